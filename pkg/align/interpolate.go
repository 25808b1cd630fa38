package align

import (
	"fmt"
	"sort"
	"time"

	"github.com/spencer-p/oceantrends/pkg/series"
)

// Estimate is an interpolated temperature for one timestamp. OK is false when
// the timestamp falls outside the span of the daily samples.
type Estimate struct {
	Time    time.Time
	Celsius float64
	OK      bool
}

func (e Estimate) String() string {
	if !e.OK {
		return fmt.Sprintf("{t: %s, absent}", e.Time.Format(time.RFC3339))
	}
	return fmt.Sprintf("{t: %s, %.2f°C}", e.Time.Format(time.RFC3339), e.Celsius)
}

// Interpolate estimates a temperature at each of times from daily samples,
// returning one Estimate per input in the same order. Between two samples the
// value is linear in elapsed time, so a 23 or 25 hour day weighs correctly.
// Times outside the samples' span are absent; there is no extrapolation.
func Interpolate(times []time.Time, temps series.Series) []Estimate {
	samples := temps.Points
	if !temps.Sorted() {
		sorted, _ := series.New(temps.Kind, temps.Points)
		samples = sorted.Points
	}

	result := make([]Estimate, len(times))
	for i, t := range times {
		result[i] = estimate(t, samples)
	}
	return result
}

func estimate(t time.Time, samples []series.Point) Estimate {
	n := len(samples)
	if n == 0 || t.Before(samples[0].Time) || t.After(samples[n-1].Time) {
		return Estimate{Time: t}
	}

	// First sample at or after t. It exists since t <= the last sample.
	hi := sort.Search(n, func(i int) bool {
		return !samples[i].Time.Before(t)
	})
	if samples[hi].Time.Equal(t) {
		return Estimate{Time: t, Celsius: samples[hi].Value, OK: true}
	}

	// t is strictly inside (samples[hi-1], samples[hi]).
	lo := hi - 1
	span := samples[hi].Time.Sub(samples[lo].Time)
	frac := float64(t.Sub(samples[lo].Time)) / float64(span)
	v := samples[lo].Value + frac*(samples[hi].Value-samples[lo].Value)
	return Estimate{Time: t, Celsius: v, OK: true}
}
