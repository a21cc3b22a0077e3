package engine

import "time"

// Clock abstracts "now" so day-boundary logic is testable without wall-clock
// dependence.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// DayKey returns the calendar-day key for a timestamp, in its location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// PreviousDayKey returns the key of the day before t.
func PreviousDayKey(t time.Time) string {
	return DayKey(t.AddDate(0, 0, -1))
}
