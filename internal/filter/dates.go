// Package filter evaluates filter criteria against opportunity records.
package filter

import "time"

// midnight truncates t to local midnight, discarding time-of-day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the signed calendar-day count from now to due. Both
// operands are truncated to local midnight first, so the result is immune to
// time-of-day and DST drift as long as both use the same location. Negative
// means due is in the past.
func DaysUntil(now, due time.Time) int {
	from := midnight(now)
	to := midnight(due.In(now.Location()))
	return int(to.Sub(from).Round(24*time.Hour) / (24 * time.Hour))
}

// WithinRelativeWindow reports whether due falls within [0, days] calendar
// days from now. A record due today matches any non-negative window; an
// overdue record never matches.
func WithinRelativeWindow(now, due time.Time, days int) bool {
	until := DaysUntil(now, due)
	return until >= 0 && until <= days
}

// WithinAbsoluteRange reports whether due falls within the inclusive
// [start, end] calendar range. Nil bounds are unbounded on that side; both
// nil always matches. Comparison is at day granularity.
func WithinAbsoluteRange(due time.Time, start, end *time.Time) bool {
	day := midnight(due)
	if start != nil && day.Before(midnight(*start)) {
		return false
	}
	if end != nil && day.After(midnight(*end)) {
		return false
	}
	return true
}
