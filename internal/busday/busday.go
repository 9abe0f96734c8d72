// Package busday counts business days (Monday through Friday) between two
// calendar dates.
package busday

import "time"

// Count returns the number of weekdays in the half-open interval [start, end):
// start is counted when it falls on a weekday, end never is. When end is
// before start the count of [end, start) is returned negated, so shipments
// recorded before their order date yield a negative lead time instead of
// panicking or clamping to zero.
//
// Only the calendar date of each argument matters; time of day and location
// are discarded.
func Count(start, end time.Time) int {
	s := civil(start)
	e := civil(end)
	if e.Before(s) {
		return -Count(end, start)
	}

	days := int(e.Sub(s).Hours() / 24)
	weeks := days / 7
	n := weeks * 5
	for d := s.AddDate(0, 0, weeks*7); d.Before(e); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

// civil truncates t to its calendar date in UTC so date arithmetic is exact.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
