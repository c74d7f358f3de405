package dayparser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// All expressions below run against normalized text: lower case, accents
// folded, whitespace collapsed. They never need to spell "á" or "é".

var dayFragments = [daysInWeek]string{
	Monday:    `lunes`,
	Tuesday:   `martes`,
	Wednesday: `miercoles`,
	Thursday:  `jueves`,
	Friday:    `viernes`,
	Saturday:  `sabados?`,
	Sunday:    `domingos?`,
}

const (
	anyDay    = `(?:lunes|martes|miercoles|jueves|viernes|sabados?|domingos?)`
	rangeSep  = `\s+(?:a|al|hasta)\s+`
	// dayExpr is a list of day names where neighbours may also be joined as a range.
	dayExpr   = anyDay + `(?:(?:\s*(?:,|y|e|o)\s*|` + rangeSep + `)` + anyDay + `)*`
	filler    = `(?:(?:los|las|el|en|de|durante|para|dias?)\s+)*`

	weekendPhrase = `(?:fin(?:es)? de semana|sabados? y domingos?)`
	weekdayPhrase = `(?:lunes` + rangeSep + `viernes|dias? (?:habiles|laborables)|entre semana)`

	restrictionMarker = `(?:(?:valid[oa]s?|aplicables?)\s+(?:solo|solamente|unicamente|exclusivamente)` +
		`|(?:solo|solamente|unicamente|exclusivamente)\s+(?:valid[oa]s?|aplicables?))`
)

var (
	dayPatterns [daysInWeek]*regexp.Regexp

	weekendPattern  = regexp.MustCompile(`\b` + weekendPhrase + `\b`)
	weekdaysPattern = regexp.MustCompile(`\b` + weekdayPhrase + `\b`)
	// "permanente" and "siempre" describe how long a benefit lasts, not
	// which days of the week it applies to.
	allDaysPattern = regexp.MustCompile(`\b(?:todos los dias|los (?:7|siete) dias(?: de la semana)?)\b`)

	timeRangePattern = regexp.MustCompile(`\b(` + anyDay + `)` + rangeSep + `(` + anyDay + `)\s+(?:de|desde)\s+(?:las\s+)?\d{1,2}`)

	restrictionMarkerPattern = regexp.MustCompile(`\b` + restrictionMarker + `\b`)
	// the days must follow the marker with only filler words in between
	restrictedDaysPattern    = regexp.MustCompile(`\b` + restrictionMarker + `\s+` + filler + `(` + dayExpr + `)\b`)
	weekendRestriction       = regexp.MustCompile(`\b` + restrictionMarker + `\s+` + filler + weekendPhrase + `\b`)
	weekdayRestriction       = regexp.MustCompile(`\b` + restrictionMarker + `\s+` + filler + weekdayPhrase + `\b`)
	everySpecificDayPattern  = regexp.MustCompile(`\btod[oa]s\s+(?:los|las)\s+(?:dias\s+)?(` + dayExpr + `)\b`)

	negationMarkerPattern = regexp.MustCompile(`\b(?:no\s+(?:es\s+)?valid[oa]s?|no\s+aplica(?:ble)?s?|excepto|excluye|excluyendo|sin\s+validez|salvo)\b`)

	// exclusivity words that make a match a restriction, whatever rule fired
	exclusivityPattern = regexp.MustCompile(`\b(?:solo|solamente|unicamente|exclusivamente)\b`)
	// words counted by the confidence bonus
	restrictionKeywordPattern = regexp.MustCompile(`\b(?:valido|aplicable|unicamente|solo)\b`)

	clauseEnd = regexp.MustCompile(`[.;\n]`)
)

// namedRange is one of the closed set of day ranges recognized on their own.
type namedRange struct {
	name     string
	from, to Day
	pattern  *regexp.Regexp
}

var namedRanges = []namedRange{
	newNamedRange("mondayToWednesday", Monday, Wednesday),
	newNamedRange("mondayToThursday", Monday, Thursday),
	newNamedRange("mondayToFriday", Monday, Friday),
	newNamedRange("tuesdayToThursday", Tuesday, Thursday),
	newNamedRange("wednesdayToFriday", Wednesday, Friday),
	newNamedRange("thursdayToSunday", Thursday, Sunday),
	newNamedRange("fridayToSunday", Friday, Sunday),
	newNamedRange("saturdayToSunday", Saturday, Sunday),
}

func newNamedRange(name string, from, to Day) namedRange {
	return namedRange{
		name:    name,
		from:    from,
		to:      to,
		pattern: regexp.MustCompile(`\b` + dayFragments[from] + rangeSep + dayFragments[to] + `\b`),
	}
}

func init() {
	for d := Monday; d <= Sunday; d++ {
		dayPatterns[d] = regexp.MustCompile(`\b` + dayFragments[d] + `\b`)
	}
}

// dayKeywords feed ContainsDayKeywords. A field without any of them is not
// worth running the rule list on.
var dayKeywords = []string{
	"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo",
	"semana", "dia", "habil", "laborable",
}

// normalize lower-cases, trims, strips diacritics and collapses whitespace.
func normalize(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(text))
	if err != nil {
		folded = strings.ToLower(text)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// dayFromToken maps a matched day word ("sabados", "miercoles") to its Day.
func dayFromToken(token string) (Day, bool) {
	if len(token) < 3 {
		return 0, false
	}
	switch token[:3] {
	case "lun":
		return Monday, true
	case "mar":
		return Tuesday, true
	case "mie":
		return Wednesday, true
	case "jue":
		return Thursday, true
	case "vie":
		return Friday, true
	case "sab":
		return Saturday, true
	case "dom":
		return Sunday, true
	}
	return 0, false
}

// namedDays unions every individual day name found in text.
func namedDays(text string) daySet {
	var s daySet
	for d := Monday; d <= Sunday; d++ {
		if dayPatterns[d].MatchString(text) {
			s |= 1 << d
		}
	}
	return s
}

// collectDays gathers every day a phrase refers to: aggregates, the named
// ranges and individual names. Any other "<day> a <day>" only counts its two
// ends.
func collectDays(text string) daySet {
	s := namedDays(text)
	if weekendPattern.MatchString(text) {
		s = s.union(weekEnd)
	}
	if weekdaysPattern.MatchString(text) {
		s = s.union(weekDays)
	}
	for _, r := range namedRanges {
		if r.pattern.MatchString(text) {
			s = s.union(spanning(r.from, r.to))
		}
	}
	return s
}

// clauseAfter returns the text following loc up to the end of its clause: a
// sentence break or the next restriction or negation marker.
func clauseAfter(text string, loc []int) string {
	tail := text[loc[1]:]
	for _, re := range []*regexp.Regexp{clauseEnd, restrictionMarkerPattern, negationMarkerPattern} {
		if end := re.FindStringIndex(tail); end != nil {
			tail = tail[:end[0]]
		}
	}
	return tail
}

// ContainsDayKeywords is a cheap pre-filter telling whether text mentions
// anything day related at all.
func ContainsDayKeywords(text string) bool {
	n := normalize(text)
	if n == "" {
		return false
	}
	for _, k := range dayKeywords {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}
