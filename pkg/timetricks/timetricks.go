package timetricks

import (
	"time"
)

const (
	dayFormat = "20060102"
)

// TrimClock returns local midnight of t's calendar day in t's location. On
// days with a DST transition this is not t minus its clock reading.
func TrimClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SetClock returns t's calendar day at the given wall clock reading.
func SetClock(t time.Time, hour, minute int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, t.Location())
}

// UniqueDay returns a string representation of t that is unique by the day.
// For instance, two seperate times on the same calendar day return identical
// strings.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}

// Mode returns the most common gap between consecutive times, the cadence of
// a series. Ties go to the smaller gap. ok is false with fewer than two times.
func Mode(times []time.Time) (gap time.Duration, ok bool) {
	if len(times) < 2 {
		return 0, false
	}
	counts := make(map[time.Duration]int)
	for i := 1; i < len(times); i++ {
		counts[times[i].Sub(times[i-1])]++
	}
	best := -1
	for d, n := range counts {
		if n > best || (n == best && d < gap) {
			gap, best = d, n
		}
	}
	return gap, true
}
