package sunset

import (
	"time"

	"github.com/spencer-p/oceantrends/pkg/timetricks"

	"github.com/keep94/sunrise"
)

// GetSunEvents returns a list of ordered sun events for every calendar day
// touched by [start, start+duration] in the given place. The first result
// will always be a sunrise.
func GetSunEvents(start time.Time, duration time.Duration, place Place) SunEvents {
	first := timetricks.TrimClock(start.In(place.Location))
	last := timetricks.TrimClock(start.Add(duration).In(place.Location))

	var ret SunEvents
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		// Anchor at local noon so the sunrise package picks this day.
		var s sunrise.Sunrise
		s.Around(place.Lat, place.Long, timetricks.SetClock(d, 12, 0))
		ret = append(ret,
			SunEvent{s.Sunrise().In(place.Location), Sunrise},
			SunEvent{s.Sunset().In(place.Location), Sunset})
	}
	return ret
}

// Nights returns the dark periods overlapping [from, to], clipped to it.
func Nights(from, to time.Time, place Place) []Night {
	if !from.Before(to) {
		return nil
	}
	events := GetSunEvents(from.Add(-24*time.Hour), to.Sub(from)+48*time.Hour, place)

	var result []Night
	for i := 1; i+1 < len(events); i += 2 {
		// events[i] is a sunset, events[i+1] the following sunrise.
		n := Night{Start: events[i].Time, End: events[i+1].Time}
		if !n.End.After(from) || !n.Start.Before(to) {
			continue
		}
		if n.Start.Before(from) {
			n.Start = from
		}
		if n.End.After(to) {
			n.End = to
		}
		result = append(result, n)
	}
	return result
}
