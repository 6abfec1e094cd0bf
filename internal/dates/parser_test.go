package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRussian_Parse(t *testing.T) {
	p := NewRussian()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"5 мая 1990", date(1990, time.May, 5)},
		{"05 мая 1990", date(1990, time.May, 5)},
		{"12 января 1903 года", date(1903, time.January, 12)},
		{"1 Сентября 1939 г.", date(1939, time.September, 1)},
		{"31 декабря 1999", date(1999, time.December, 31)},
		{"3 марта 1850", date(1850, time.March, 3)},
		{"7 June 1867", date(1867, time.June, 7)},
		{"05.05.1990", date(1990, time.May, 5)},
		{"5/5/90", date(1990, time.May, 5)},
		{"01-02-05", date(2005, time.February, 1)},
		{"1990-05-05", date(1990, time.May, 5)},
		{"1990.5.5", date(1990, time.May, 5)},
		{"1990-05-05+02:00", date(1990, time.May, 5)},
		{"1842-08-14T00:00:00Z", date(1842, time.August, 14)},
	}

	for _, tt := range tests {
		got, ok := p.Parse(tt.in)
		if !ok {
			t.Errorf("Parse(%q) failed", tt.in)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

func TestRussian_ParseFailures(t *testing.T) {
	p := NewStrictRussian()

	for _, in := range []string{
		"",
		"   ",
		"вчера",
		"31.02.1990",
		"5 бананов 1990",
		"1990-13-01",
		"00.05.1990",
	} {
		if got, ok := p.Parse(in); ok {
			t.Errorf("Parse(%q) = %s, expected failure", in, got)
		}
	}
}

func TestRussian_SameDateDifferentForms(t *testing.T) {
	p := NewRussian()

	forms := []string{"5 мая 1990", "05.05.1990", "1990-05-05"}
	first, ok := p.Parse(forms[0])
	if !ok {
		t.Fatalf("Parse(%q) failed", forms[0])
	}
	for _, f := range forms[1:] {
		got, ok := p.Parse(f)
		if !ok || !got.Equal(first) {
			t.Errorf("Parse(%q) = %v (ok=%v), want %v", f, got, ok, first)
		}
	}
}

func TestMonthFromName(t *testing.T) {
	tests := []struct {
		name  string
		month time.Month
		ok    bool
	}{
		{"мая", time.May, true},
		{"Май", time.May, true},
		{"февраля", time.February, true},
		{"фев.", time.February, true},
		{"ноябре", time.November, true},
		{"August", time.August, true},
		{"ма", 0, false},
		{"кот", 0, false},
	}

	for _, tt := range tests {
		got, ok := MonthFromName(tt.name)
		if ok != tt.ok || got != tt.month {
			t.Errorf("MonthFromName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.month, tt.ok)
		}
	}
}

func TestExpandYear(t *testing.T) {
	tests := map[string]int{"90": 1990, "69": 1969, "68": 2068, "05": 2005, "1990": 1990}
	for in, want := range tests {
		if got := expandYear(in); got != want {
			t.Errorf("expandYear(%q) = %d, want %d", in, got, want)
		}
	}
}
