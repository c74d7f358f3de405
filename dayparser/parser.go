package dayparser

import (
	"regexp"
	"strings"
)

// Rule names reported in PatternMatch.Pattern.
const (
	PatternWeekendRestriction = "weekendRestriction"
	PatternWeekdayRestriction = "weekdayRestriction"
	PatternAllDaysSpecificDay = "allDaysSpecificDay"
	PatternRestrictedDays     = "restrictedDays"
	PatternExceptDay          = "exceptDay"
	PatternTimeBasedRange     = "timeBasedRange"
	PatternWeekend            = "weekend"
	PatternWeekdays           = "weekdays"
	PatternAllDays            = "allDays"
	PatternSpecificDays       = "specificDays"
)

// PatternMatch describes which rule interpreted a text and how strongly.
type PatternMatch struct {
	Pattern       string  `json:"pattern"`
	Confidence    float64 `json:"confidence"`
	IsRestriction bool    `json:"isRestriction"`
	IsNegation    bool    `json:"isNegation"`
}

// ParseResult pairs an availability with the match that produced it.
type ParseResult struct {
	Availability DayAvailability `json:"availability"`
	Match        PatternMatch    `json:"match"`
}

// outcome is what a rule hands back when it fires.
type outcome struct {
	days    daySet
	allDays bool
	pattern string
}

// rule is one entry of the ordered rule list. Order is priority: the first
// rule that fires wins, regardless of where its words sit in the text.
type rule struct {
	category category
	apply    func(folded string) (outcome, bool)
}

var rules = []rule{
	// Explicit exclusivity must not be diluted by the vaguer rules below.
	{categoryRestriction, fixed(weekendRestriction, PatternWeekendRestriction, weekEnd)},
	{categoryRestriction, fixed(weekdayRestriction, PatternWeekdayRestriction, weekDays)},
	{categorySpecificDay, everySpecificDay},
	{categoryRestriction, restrictedDays},
	{categoryNegation, exceptDays},
	{categoryTimeRange, timeBasedRange},
	{categoryContext, fixed(weekendPattern, PatternWeekend, weekEnd)},
	{categoryContext, fixed(weekdaysPattern, PatternWeekdays, weekDays)},
	// Least specific signal, so it only runs once weekday/weekend had a go.
	{categoryAllDays, allDays},
	{categoryRange, namedRangeDays},
	{categorySpecificDay, specificDays},
}

func fixed(re *regexp.Regexp, name string, days daySet) func(string) (outcome, bool) {
	return func(folded string) (outcome, bool) {
		if !re.MatchString(folded) {
			return outcome{}, false
		}
		return outcome{days: days, pattern: name}, true
	}
}

func everySpecificDay(folded string) (outcome, bool) {
	m := everySpecificDayPattern.FindStringSubmatch(folded)
	if m == nil {
		return outcome{}, false
	}
	days := collectDays(m[1])
	if days == noDays {
		return outcome{}, false
	}
	return outcome{days: days, pattern: PatternAllDaysSpecificDay}, true
}

func restrictedDays(folded string) (outcome, bool) {
	m := restrictedDaysPattern.FindStringSubmatch(folded)
	if m == nil {
		return outcome{}, false
	}
	days := collectDays(m[1])
	if days == noDays {
		return outcome{}, false
	}
	return outcome{days: days, pattern: PatternRestrictedDays}, true
}

func exceptDays(folded string) (outcome, bool) {
	loc := negationMarkerPattern.FindStringIndex(folded)
	if loc == nil {
		return outcome{}, false
	}
	excluded := collectDays(clauseAfter(folded, loc))
	if excluded == noDays {
		return outcome{}, false
	}
	return outcome{days: everyDay.without(excluded), pattern: PatternExceptDay}, true
}

func timeBasedRange(folded string) (outcome, bool) {
	m := timeRangePattern.FindStringSubmatch(folded)
	if m == nil {
		return outcome{}, false
	}
	from, ok1 := dayFromToken(m[1])
	to, ok2 := dayFromToken(m[2])
	if !ok1 || !ok2 {
		return outcome{}, false
	}
	return outcome{days: spanning(from, to), pattern: PatternTimeBasedRange}, true
}

func allDays(folded string) (outcome, bool) {
	if !allDaysPattern.MatchString(folded) {
		return outcome{}, false
	}
	return outcome{days: everyDay, allDays: true, pattern: PatternAllDays}, true
}

func namedRangeDays(folded string) (outcome, bool) {
	for _, r := range namedRanges {
		if r.pattern.MatchString(folded) {
			return outcome{days: spanning(r.from, r.to), pattern: r.name}, true
		}
	}
	return outcome{}, false
}

func specificDays(folded string) (outcome, bool) {
	days := namedDays(folded)
	if days == noDays {
		return outcome{}, false
	}
	return outcome{days: days, pattern: PatternSpecificDays}, true
}

// ParseEnhanced interprets text and reports the match metadata. It returns
// nil for blank text or when no rule recognizes anything.
func ParseEnhanced(text string) *ParseResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	folded := normalize(trimmed)

	for _, r := range rules {
		out, ok := r.apply(folded)
		if !ok {
			continue
		}
		return &ParseResult{
			Availability: availabilityOf(out.days, out.allDays),
			Match: PatternMatch{
				Pattern:       out.pattern,
				Confidence:    score(r.category, trimmed, folded),
				IsRestriction: exclusivityPattern.MatchString(folded),
				IsNegation:    negationMarkerPattern.MatchString(folded),
			},
		}
	}
	return nil
}

// Parse is the plain entry point. Blank text gives nil; text no rule
// understands comes back verbatim in CustomText with every day unset, so
// callers can show it as is.
func Parse(text string) *DayAvailability {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if res := ParseEnhanced(text); res != nil {
		a := res.Availability
		return &a
	}
	return &DayAvailability{CustomText: text}
}
