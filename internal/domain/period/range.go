package period

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Range is an inclusive calendar-date window.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// New builds a range from two dates, dropping any time-of-day component.
func New(from, to time.Time) (Range, error) {
	r := Range{From: Day(from), To: Day(to)}
	if r.From.After(r.To) {
		return Range{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidRange, r.From.Format(DateLayout), r.To.Format(DateLayout))
	}
	return r, nil
}

// Parse builds a range from YYYY-MM-DD strings.
func Parse(from, to string) (Range, error) {
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		return Range{}, fmt.Errorf("%w: invalid from date %q", ErrInvalidRange, from)
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		return Range{}, fmt.Errorf("%w: invalid to date %q", ErrInvalidRange, to)
	}
	return New(f, t)
}

// Lifetime spans from the Unix epoch to now.
func Lifetime(now time.Time) Range {
	return Range{From: time.Unix(0, 0).UTC(), To: Day(now)}
}

// SingleDay is the range covering only day.
func SingleDay(day time.Time) Range {
	d := Day(day)
	return Range{From: d, To: d}
}

// MonthToDate runs from the first of day's month up to day. It is the salary cycle.
func MonthToDate(day time.Time) Range {
	d := Day(day)
	return Range{From: time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC), To: d}
}

// Days is the number of calendar days in the range, both ends included.
func (r Range) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// Contains reports whether t falls on a day inside the range.
func (r Range) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.From) && !d.After(r.To)
}

// EachDay calls fn for every day of the range in order.
func (r Range) EachDay(fn func(day time.Time)) {
	for d := r.From; !d.After(r.To); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Months lists the YYYY-MM keys touched by the range in order.
func (r Range) Months() []string {
	var keys []string
	start := time.Date(r.From.Year(), r.From.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m := start; !m.After(r.To); m = m.AddDate(0, 1, 0) {
		keys = append(keys, m.Format(MonthLayout))
	}
	return keys
}

func (r Range) String() string {
	return r.From.Format(DateLayout) + ".." + r.To.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey formats t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}
