package dayparser

import (
	"sort"
	"strings"

	"benefits-server/logger"

	"go.uber.org/zap"
)

// Field names a text field of a benefit that may talk about days.
type Field string

const (
	FieldCondicion       Field = "condicion"
	FieldRequisitos      Field = "requisitos"
	FieldCuando          Field = "cuando"
	FieldTextoAplicacion Field = "textoAplicacion"
)

// Priority ranks fields when they disagree; higher wins.
func (f Field) Priority() int {
	switch f {
	case FieldCondicion:
		return 4
	case FieldRequisitos:
		return 3
	case FieldCuando:
		return 2
	case FieldTextoAplicacion:
		return 1
	}
	return 0
}

// minRelativeConfidence is the fraction of the accumulated confidence a
// candidate needs to take part in the merge at all.
const minRelativeConfidence = 0.7

// parseFieldText interprets a single field. Tests swap it to inject failures.
var parseFieldText = ParseEnhanced

// BenefitDayInfo holds the raw text fields of a benefit that can describe
// its valid days. Every field is optional.
type BenefitDayInfo struct {
	Condicion       string   `json:"condicion,omitempty"`
	Requisitos      []string `json:"requisitos,omitempty"`
	Cuando          string   `json:"cuando,omitempty"`
	TextoAplicacion string   `json:"textoAplicacion,omitempty"`
}

// FieldParsingResult is the interpretation of a single field.
type FieldParsingResult struct {
	Field         Field           `json:"field"`
	Availability  DayAvailability `json:"availability"`
	Confidence    float64         `json:"confidence"`
	IsRestriction bool            `json:"isRestriction"`
	IsNegation    bool            `json:"isNegation"`
	OriginalText  string          `json:"originalText"`
}

// MergeDayAvailability combines two field results:
//   - same field: union, statements from one source add up
//   - exactly one restriction: the restriction replaces the other
//   - no restriction: union
//   - two restrictions from different fields: intersection
//
// Flags are OR'd, confidence is the max of both and custom text survives
// from whichever side carries it.
func MergeDayAvailability(primary, secondary FieldParsingResult, sameField bool) FieldParsingResult {
	a, b := primary.Availability, secondary.Availability

	var days daySet
	var all bool
	switch {
	case sameField, !primary.IsRestriction && !secondary.IsRestriction:
		days, all = a.days().union(b.days()), a.AllDays || b.AllDays
	case primary.IsRestriction != secondary.IsRestriction:
		winner := a
		if secondary.IsRestriction {
			winner = b
		}
		days, all = winner.days(), winner.AllDays
	default:
		days, all = a.days().intersect(b.days()), a.AllDays && b.AllDays
	}

	merged := availabilityOf(days, all)
	merged.CustomText = a.CustomText
	if merged.CustomText == "" {
		merged.CustomText = b.CustomText
	}

	confidence := primary.Confidence
	if secondary.Confidence > confidence {
		confidence = secondary.Confidence
	}

	return FieldParsingResult{
		Field:         primary.Field,
		Availability:  merged,
		Confidence:    confidence,
		IsRestriction: primary.IsRestriction || secondary.IsRestriction,
		IsNegation:    primary.IsNegation || secondary.IsNegation,
		OriginalText:  primary.OriginalText,
	}
}

// ParseMultiField resolves the day information spread over a benefit's text
// fields into one availability. It returns nil when no field mentions days.
func ParseMultiField(info BenefitDayInfo) (result *DayAvailability) {
	defer func() {
		if r := recover(); r != nil {
			logger.Named("dayparser").Warn("multi-field resolution failed, using cuando only", zap.Any("panic", r))
			result = parseCuandoOnly(info.Cuando)
		}
	}()

	var candidates []FieldParsingResult
	if res := parseField(FieldCondicion, info.Condicion); res != nil {
		candidates = append(candidates, *res)
	}
	if res := parseRequisitos(info.Requisitos); res != nil {
		candidates = append(candidates, *res)
	}
	if res := parseField(FieldCuando, info.Cuando); res != nil {
		candidates = append(candidates, *res)
	}
	if res := parseField(FieldTextoAplicacion, info.TextoAplicacion); res != nil {
		candidates = append(candidates, *res)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := candidates[i].Field.Priority(), candidates[j].Field.Priority()
		if pi != pj {
			return pi > pj
		}
		return candidates[i].Confidence > candidates[j].Confidence
	})

	acc := candidates[0]
	for _, c := range candidates[1:] {
		if c.Confidence < acc.Confidence*minRelativeConfidence {
			continue
		}
		if merged, ok := safeMerge(acc, c, acc.Field == c.Field); ok {
			acc = merged
		}
	}

	out := acc.Availability
	return &out
}

// parseField runs the rule list on one field. A panic drops the field.
func parseField(field Field, text string) (res *FieldParsingResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Named("dayparser").Warn("failed to parse field",
				zap.String("field", string(field)), zap.Any("panic", r))
			res = nil
		}
	}()

	if !ContainsDayKeywords(text) {
		return nil
	}
	parsed := parseFieldText(text)
	if parsed == nil {
		return nil
	}
	return &FieldParsingResult{
		Field:         field,
		Availability:  parsed.Availability,
		Confidence:    parsed.Match.Confidence,
		IsRestriction: parsed.Match.IsRestriction,
		IsNegation:    parsed.Match.IsNegation,
		OriginalText:  strings.TrimSpace(text),
	}
}

// parseRequisitos parses every requirement and unions them into one result.
func parseRequisitos(items []string) *FieldParsingResult {
	var acc *FieldParsingResult
	for _, item := range items {
		res := parseField(FieldRequisitos, item)
		if res == nil {
			continue
		}
		if acc == nil {
			acc = res
			continue
		}
		if merged, ok := safeMerge(*acc, *res, true); ok {
			merged.OriginalText = acc.OriginalText + "; " + res.OriginalText
			acc = &merged
		}
	}
	return acc
}

func safeMerge(primary, secondary FieldParsingResult, sameField bool) (merged FieldParsingResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Named("dayparser").Warn("failed to merge field",
				zap.String("field", string(secondary.Field)), zap.Any("panic", r))
			ok = false
		}
	}()
	return MergeDayAvailability(primary, secondary, sameField), true
}

func parseCuandoOnly(cuando string) *DayAvailability {
	res := ParseEnhanced(cuando)
	if res == nil {
		return nil
	}
	a := res.Availability
	return &a
}
