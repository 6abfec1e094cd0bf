// Package dates finds birth dates in free text and parses date strings coming
// from claims and from the knowledge base into calendar dates.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parser turns a date string into a calendar date
type Parser interface {
	Parse(text string) (time.Time, bool)
}

// ParserFunc adapts a function to the Parser interface
type ParserFunc func(text string) (time.Time, bool)

// Parse calls f(text)
func (f ParserFunc) Parse(text string) (time.Time, bool) {
	return f(text)
}

var (
	wordDateRe    = regexp.MustCompile(`^(\d{1,2})[\s\p{Z}]+(\p{L}+)\.?[\s\p{Z}]+(\d{4})(?:[\s\p{Z}]*(?:г|года?)\.?)?$`)
	dayFirstRe    = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2}|\d{4})$`)
	yearFirstRe   = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-](\d{1,2})$`)
	isoPrefixRe   = regexp.MustCompile(`^(-?\d{4})-(\d{2})-(\d{2})(?:[T ][0-9:.]+)?(?:Z|[+-]\d{2}:?\d{2})?$`)
	monthPrefixes = []struct {
		prefix string
		month  time.Month
	}{
		{"янв", time.January},
		{"фев", time.February},
		{"мар", time.March},
		{"апр", time.April},
		{"июн", time.June},
		{"июл", time.July},
		{"авг", time.August},
		{"сен", time.September},
		{"окт", time.October},
		{"ноя", time.November},
		{"дек", time.December},
		{"jan", time.January},
		{"feb", time.February},
		{"mar", time.March},
		{"apr", time.April},
		{"jun", time.June},
		{"jul", time.July},
		{"aug", time.August},
		{"sep", time.September},
		{"oct", time.October},
		{"nov", time.November},
		{"dec", time.December},
	}
)

// May is the only month whose forms are too short for a stable prefix
var mayForms = map[string]bool{"май": true, "мая": true, "мае": true, "маю": true, "маем": true, "may": true}

// Russian parses Russian and numeric date forms, day first, and falls back to
// dateparse for anything else
type Russian struct {
	fallback bool
}

// NewRussian creates the default date parser
func NewRussian() *Russian {
	return &Russian{fallback: true}
}

// NewStrictRussian creates a parser without the dateparse fallback
func NewStrictRussian() *Russian {
	return &Russian{fallback: false}
}

// Parse returns the calendar date at UTC midnight
func (p *Russian) Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	if m := isoPrefixRe.FindStringSubmatch(text); m != nil {
		return civil(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := wordDateRe.FindStringSubmatch(text); m != nil {
		if month, ok := MonthFromName(m[2]); ok {
			return civil(atoi(m[3]), int(month), atoi(m[1]))
		}
	}

	if m := dayFirstRe.FindStringSubmatch(text); m != nil {
		return civil(expandYear(m[3]), atoi(m[2]), atoi(m[1]))
	}

	if m := yearFirstRe.FindStringSubmatch(text); m != nil {
		return civil(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if !p.fallback {
		return time.Time{}, false
	}

	t, err := dateparse.ParseAny(text)
	if err != nil {
		return time.Time{}, false
	}
	return civil(t.Year(), int(t.Month()), t.Day())
}

// MonthFromName resolves a Russian or English month name in any common form
func MonthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	if mayForms[name] {
		return time.May, true
	}
	if len([]rune(name)) < 3 {
		return 0, false
	}

	for _, mp := range monthPrefixes {
		if strings.HasPrefix(name, mp.prefix) {
			return mp.month, true
		}
	}
	return 0, false
}

// civil validates a year/month/day triple and returns it at UTC midnight
func civil(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year == 0 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// expandYear maps two-digit years to 1969-2068
func expandYear(s string) int {
	y := atoi(s)
	if len(s) != 2 {
		return y
	}
	if y < 69 {
		return 2000 + y
	}
	return 1900 + y
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
