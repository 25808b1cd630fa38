package align

import (
	"math"
	"testing"
	"time"

	"github.com/spencer-p/oceantrends/pkg/series"
)

func mustSeries(t *testing.T, kind series.Kind, points ...series.Point) series.Series {
	t.Helper()
	s, err := series.New(kind, points)
	if err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return s
}

func TestInterpolate(t *testing.T) {
	day := time.Date(2025, time.July, 29, 0, 0, 0, 0, time.UTC)
	temps := mustSeries(t, series.Temperature,
		series.Point{Time: day, Value: 18},
		series.Point{Time: day.AddDate(0, 0, 1), Value: 20},
		series.Point{Time: day.AddDate(0, 0, 2), Value: 17},
	)

	table := []struct {
		name string
		t    time.Time
		want float64
		ok   bool
	}{
		{"first sample", day, 18, true},
		{"middle sample", day.AddDate(0, 0, 1), 20, true},
		{"last sample", day.AddDate(0, 0, 2), 17, true},
		{"quarter day", day.Add(6 * time.Hour), 18.5, true},
		{"one hour", day.Add(time.Hour), 18 + 2.0/24, true},
		{"falling", day.Add(36 * time.Hour), 18.5, true},
		{"before", day.Add(-time.Minute), 0, false},
		{"after", day.AddDate(0, 0, 2).Add(time.Minute), 0, false},
	}

	times := make([]time.Time, len(table))
	for i, tc := range table {
		times[i] = tc.t
	}
	got := Interpolate(times, temps)
	if len(got) != len(table) {
		t.Fatalf("got %d estimates, want %d", len(got), len(table))
	}

	for i, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			e := got[i]
			if !e.Time.Equal(tc.t) {
				t.Errorf("estimate out of order: %s", e.Time)
			}
			if e.OK != tc.ok {
				t.Fatalf("got ok=%v, want %v", e.OK, tc.ok)
			}
			if tc.ok && math.Abs(e.Celsius-tc.want) > 1e-9 {
				t.Errorf("got %f, want %f", e.Celsius, tc.want)
			}
		})
	}
}

func TestInterpolateIdempotentAtSamples(t *testing.T) {
	day := time.Date(2025, time.July, 29, 0, 0, 0, 0, time.UTC)
	temps := mustSeries(t, series.Temperature,
		series.Point{Time: day, Value: 18.37},
		series.Point{Time: day.AddDate(0, 0, 1), Value: 20.11},
	)
	got := Interpolate([]time.Time{day}, temps)
	if !got[0].OK || got[0].Celsius != 18.37 {
		t.Errorf("got %s, want exactly 18.37", got[0])
	}
}

func TestInterpolateSingleSample(t *testing.T) {
	day := time.Date(2025, time.July, 29, 0, 0, 0, 0, time.UTC)
	temps := mustSeries(t, series.Temperature, series.Point{Time: day, Value: 19})

	got := Interpolate([]time.Time{day.Add(-time.Hour), day, day.Add(time.Hour)}, temps)
	if got[0].OK || got[2].OK {
		t.Errorf("expected absent estimates off the single sample: %v", got)
	}
	if !got[1].OK || got[1].Celsius != 19 {
		t.Errorf("got %s at the sample, want 19", got[1])
	}
}

func TestInterpolateEmpty(t *testing.T) {
	got := Interpolate([]time.Time{time.Now()}, series.Empty(series.Temperature))
	if got[0].OK {
		t.Errorf("got %s from no samples", got[0])
	}
}

func TestInterpolateAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("no tzdata: %v", err)
	}
	// March 9 2025 is 23 hours long in Los Angeles.
	d0 := time.Date(2025, time.March, 9, 0, 0, 0, 0, loc)
	d1 := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)
	temps := mustSeries(t, series.Temperature,
		series.Point{Time: d0, Value: 0},
		series.Point{Time: d1, Value: 23},
	)

	// Noon local is 11 elapsed hours after midnight that day.
	got := Interpolate([]time.Time{time.Date(2025, time.March, 9, 12, 0, 0, 0, loc)}, temps)
	if !got[0].OK || math.Abs(got[0].Celsius-11) > 1e-9 {
		t.Errorf("got %s, want 11", got[0])
	}
}
