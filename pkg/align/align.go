package align

import (
	"fmt"
	"sort"
	"time"

	"github.com/spencer-p/oceantrends/pkg/series"
)

// DefaultTolerance is the widest gap allowed between a tide timestamp and the
// wave report matched to it.
const DefaultTolerance = 1 * time.Hour

// Record is one row of an aligned table.
type Record struct {
	Time        time.Time `json:"time"`
	TideHeight  float64   `json:"tide_height_m"`
	WaveHeight  float64   `json:"wave_height_m"`
	Temperature float64   `json:"temperature_c"`

	// WaveTime is when the matched wave report was taken.
	WaveTime time.Time `json:"wave_time"`
}

// WaveGap is the distance between the row and its wave report.
func (r Record) WaveGap() time.Duration {
	return absDuration(r.WaveTime.Sub(r.Time))
}

func (r Record) String() string {
	return fmt.Sprintf("{t: %s, tide: %.3fm, wave: %.2fm (%s off), temp: %.2f°C}",
		r.Time.Format(time.RFC3339), r.TideHeight, r.WaveHeight, r.WaveGap(), r.Temperature)
}

// Table is a set of aligned rows ascending by time with unique timestamps.
type Table []Record

// Times returns the row timestamps.
func (t Table) Times() []time.Time {
	result := make([]time.Time, len(t))
	for i, r := range t {
		result[i] = r.Time
	}
	return result
}

// WaveHeights returns the wave height column.
func (t Table) WaveHeights() []float64 {
	result := make([]float64, len(t))
	for i, r := range t {
		result[i] = r.WaveHeight
	}
	return result
}

// Aligner matches wave reports to tide timestamps within Tolerance.
type Aligner struct {
	Tolerance time.Duration
}

// NewAligner returns an Aligner. A non-positive tolerance falls back to
// DefaultTolerance.
func NewAligner(tolerance time.Duration) *Aligner {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Aligner{Tolerance: tolerance}
}

// Align builds a table with one row per tide timestamp that has both a wave
// report within tolerance and a temperature estimate. temps[i] belongs to
// tide.Points[i] as passed in, whatever their order; see Interpolate. If a
// tide timestamp repeats, its first occurrence wins. Empty input yields an
// empty table, which Validate rejects.
//
// Runs in O(n log n + m log m) for n tide and m wave points.
func (a *Aligner) Align(tide, wave series.Series, temps []Estimate) Table {
	if tide.Len() == 0 || wave.Len() == 0 {
		return Table{}
	}

	// Sort tide positions so temperatures travel with their rows.
	order := make([]int, tide.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return tide.Points[order[i]].Time.Before(tide.Points[order[j]].Time)
	})
	waves := wave.Points
	if !wave.Sorted() {
		sorted, _ := series.New(series.Wave, wave.Points)
		waves = sorted.Points
	}

	result := Table{}
	var last time.Time
	for k, i := range order {
		p := tide.Points[i]
		if k > 0 && last.Equal(p.Time) {
			continue
		}
		last = p.Time
		if i >= len(temps) || !temps[i].OK {
			continue
		}
		w := a.nearest(waves, p.Time)
		if w == nil {
			continue
		}
		result = append(result, Record{
			Time:        p.Time,
			TideHeight:  p.Value,
			WaveHeight:  w.Value,
			Temperature: temps[i].Celsius,
			WaveTime:    w.Time,
		})
	}
	return result
}

// nearest binary searches sorted readings for the one closest to target.
// Equal distances go to the earlier reading, and among readings sharing a
// timestamp to the first. Returns nil if nothing lies within tolerance.
func (a *Aligner) nearest(readings []series.Point, target time.Time) *series.Point {
	n := len(readings)
	// First reading at or after target.
	idx := sort.Search(n, func(i int) bool {
		return !readings[i].Time.Before(target)
	})

	var best *series.Point
	minDiff := a.Tolerance + 1

	if idx > 0 {
		// Walk back to the first of any readings sharing the preceding time.
		before := readings[idx-1].Time
		lo := sort.Search(n, func(i int) bool {
			return !readings[i].Time.Before(before)
		})
		if diff := absDuration(target.Sub(before)); diff <= a.Tolerance {
			best, minDiff = &readings[lo], diff
		}
	}
	if idx < n {
		if diff := absDuration(readings[idx].Time.Sub(target)); diff <= a.Tolerance && diff < minDiff {
			best = &readings[idx]
		}
	}
	return best
}

// absDuration returns the absolute value of d.
func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
