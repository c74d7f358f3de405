package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"benefits-server/dayparser"
)

// ParseWeekdayParam reads the day filter of a query string. It accepts
// "hoy"/"today", ISO numbers (1 is Monday, 7 is Sunday), English names or
// abbreviations and any Spanish text naming exactly one day. An empty value
// means no filter and yields nil.
func ParseWeekdayParam(value string, now time.Time) (*time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return nil, nil
	}

	if v == "hoy" || v == "today" {
		w := now.Weekday()
		return &w, nil
	}

	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > 7 {
			return nil, fmt.Errorf("day number %d out of range 1-7", n)
		}
		w := time.Weekday(n % 7)
		return &w, nil
	}

	for w := time.Sunday; w <= time.Saturday; w++ {
		name := strings.ToLower(w.String())
		if v == name || (len(v) >= 3 && strings.HasPrefix(name, v)) {
			found := w
			return &found, nil
		}
	}

	if days := dayparser.Parse(v); days != nil && !days.AllDays {
		if d := days.Days(); len(d) == 1 {
			w := d[0].Weekday()
			return &w, nil
		}
	}

	return nil, fmt.Errorf("unrecognized day %q", value)
}
