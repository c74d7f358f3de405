package dayparser

import (
	"math"
	"unicode/utf8"
)

// category groups rules that share a base confidence.
type category int

const (
	categoryRestriction category = iota
	categoryNegation
	categorySpecificDay
	categoryRange
	categoryContext
	categoryTimeRange
	categoryAllDays
)

var baseConfidence = map[category]float64{
	categoryRestriction: 0.90,
	categoryNegation:    0.85,
	categorySpecificDay: 0.80,
	categoryRange:       0.75,
	categoryContext:     0.70,
	categoryTimeRange:   0.65,
	categoryAllDays:     0.60,
}

const (
	keywordBonus     = 0.03
	maxConfidence    = 0.98
	longTextRunes    = 100
	longTextPenalty  = 0.9
	confidenceDigits = 100
)

// score computes the confidence of a match of category c in text. folded is
// the normalized form of text; length is measured on the trimmed original.
func score(c category, text, folded string) float64 {
	s := baseConfidence[c]

	if n := len(restrictionKeywordPattern.FindAllStringIndex(folded, -1)); n > 1 {
		s = math.Min(s+keywordBonus*float64(n-1), maxConfidence)
	}
	if utf8.RuneCountInString(text) > longTextRunes {
		s *= longTextPenalty
	}
	return math.Round(s*confidenceDigits) / confidenceDigits
}

// PatternConfidence returns how much the best matching rule for text can be
// trusted, or 0 when nothing matches.
func PatternConfidence(text string) float64 {
	res := ParseEnhanced(text)
	if res == nil {
		return 0
	}
	return res.Match.Confidence
}
