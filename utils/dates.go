// utils/dates.go
package utils

import "time"

// BeginningOfDay truncates t to midnight in its location. Date guards
// on bookings compare against this, so "today" never counts as past.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
