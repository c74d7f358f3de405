// Package dayparser interprets free-form Spanish text describing when a
// benefit can be used ("válido solo fines de semana", "excepto domingos",
// "lunes a viernes de 9 a 17hs") and turns it into a weekly availability.
//
// Every function in the package is pure: results depend only on the input
// text and the package is safe for concurrent use.
package dayparser

import "time"

// Day is a day of the week, Monday first.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const daysInWeek = 7

var spanishNames = [daysInWeek]string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

// AllDaysLabel is what AvailableDayNames returns for an every-day benefit.
const AllDaysLabel = "Todos los días"

// SpanishName returns the display name of the day.
func (d Day) SpanishName() string {
	if d < Monday || d > Sunday {
		return ""
	}
	return spanishNames[d]
}

// Weekday converts the day to the standard library representation.
func (d Day) Weekday() time.Weekday {
	return time.Weekday((int(d) + 1) % daysInWeek)
}

// DayFromWeekday converts a time.Weekday into a Day.
func DayFromWeekday(w time.Weekday) Day {
	return Day((int(w) + daysInWeek - 1) % daysInWeek)
}

// daySet is a 7-bit weekly set, bit 0 is Monday.
type daySet uint8

const (
	noDays   daySet = 0
	weekDays daySet = 1<<Monday | 1<<Tuesday | 1<<Wednesday | 1<<Thursday | 1<<Friday
	weekEnd  daySet = 1<<Saturday | 1<<Sunday
	everyDay daySet = weekDays | weekEnd
)

func setOf(days ...Day) daySet {
	var s daySet
	for _, d := range days {
		s |= 1 << d
	}
	return s
}

// spanning returns from..to inclusive, wrapping past Sunday when to < from.
func spanning(from, to Day) daySet {
	var s daySet
	for d := from; ; d = (d + 1) % daysInWeek {
		s |= 1 << d
		if d == to {
			return s
		}
	}
}

func (s daySet) has(d Day) bool { return s&(1<<d) != 0 }

func (s daySet) union(o daySet) daySet { return s | o }

func (s daySet) intersect(o daySet) daySet { return s & o }

func (s daySet) without(o daySet) daySet { return s &^ o & everyDay }

// DayAvailability is the weekly availability of a benefit.
//
// AllDays is only ever set by the unqualified "todos los días" rule; seven
// individually derived days do not imply it.
type DayAvailability struct {
	Monday     bool   `json:"monday"`
	Tuesday    bool   `json:"tuesday"`
	Wednesday  bool   `json:"wednesday"`
	Thursday   bool   `json:"thursday"`
	Friday     bool   `json:"friday"`
	Saturday   bool   `json:"saturday"`
	Sunday     bool   `json:"sunday"`
	AllDays    bool   `json:"allDays"`
	CustomText string `json:"customText,omitempty"`
}

func availabilityOf(s daySet, allDays bool) DayAvailability {
	if allDays {
		s = everyDay
	}
	return DayAvailability{
		Monday:    s.has(Monday),
		Tuesday:   s.has(Tuesday),
		Wednesday: s.has(Wednesday),
		Thursday:  s.has(Thursday),
		Friday:    s.has(Friday),
		Saturday:  s.has(Saturday),
		Sunday:    s.has(Sunday),
		AllDays:   allDays,
	}
}

func (a DayAvailability) days() daySet {
	var s daySet
	for i, on := range [daysInWeek]bool{a.Monday, a.Tuesday, a.Wednesday, a.Thursday, a.Friday, a.Saturday, a.Sunday} {
		if on {
			s |= 1 << Day(i)
		}
	}
	return s
}

// Days lists the available days, Monday first.
func (a DayAvailability) Days() []Day {
	s := a.days()
	out := make([]Day, 0, daysInWeek)
	for d := Monday; d <= Sunday; d++ {
		if s.has(d) {
			out = append(out, d)
		}
	}
	return out
}

// IsAvailableOn reports whether the benefit can be used on the given weekday.
func (a *DayAvailability) IsAvailableOn(w time.Weekday) bool {
	if a == nil {
		return false
	}
	return a.AllDays || a.days().has(DayFromWeekday(w))
}

// HasAnyDayAvailable reports whether at least one day is set.
func HasAnyDayAvailable(a *DayAvailability) bool {
	if a == nil {
		return false
	}
	return a.AllDays || a.days() != noDays
}

// AvailableDayNames returns the Spanish names of the available days.
func AvailableDayNames(a *DayAvailability) []string {
	if a == nil {
		return []string{}
	}
	if a.AllDays {
		return []string{AllDaysLabel}
	}
	days := a.Days()
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.SpanishName())
	}
	return names
}
