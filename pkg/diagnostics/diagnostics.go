// Package diagnostics explains why an aligned table has the rows it has:
// the span and cadence of each input, how much of the tide series found a
// temperature estimate and a wave match, and how far the matches reached.
package diagnostics

import (
	"fmt"
	"strings"
	"time"

	"github.com/spencer-p/oceantrends/pkg/align"
	"github.com/spencer-p/oceantrends/pkg/series"
	"github.com/spencer-p/oceantrends/pkg/timetricks"
)

// SeriesStats describes one input series.
type SeriesStats struct {
	Kind        series.Kind
	Points      int
	Days        int
	First, Last time.Time
	// Cadence is the most common gap between points, zero with fewer than two.
	Cadence time.Duration
}

// Report is the data quality summary of one pipeline run.
type Report struct {
	Inputs []SeriesStats

	Estimates     int
	EstimatesOK   int
	Rows          int
	Dropped       int
	MaxWaveGap    time.Duration
	MaxWaveGapRow time.Time
}

// Summarize builds a Report from the inputs and output of an alignment.
func Summarize(tide, wave, temperature series.Series, estimates []align.Estimate, table align.Table) Report {
	r := Report{
		Inputs:    []SeriesStats{stats(tide), stats(wave), stats(temperature)},
		Estimates: len(estimates),
		Rows:      len(table),
		Dropped:   tide.Len() - len(table),
	}
	for _, e := range estimates {
		if e.OK {
			r.EstimatesOK++
		}
	}
	for _, row := range table {
		if gap := row.WaveGap(); gap > r.MaxWaveGap || r.MaxWaveGapRow.IsZero() {
			r.MaxWaveGap, r.MaxWaveGapRow = gap, row.Time
		}
	}
	return r
}

func stats(s series.Series) SeriesStats {
	st := SeriesStats{Kind: s.Kind, Points: s.Len()}
	st.First, st.Last, _ = s.Span()
	st.Cadence, _ = timetricks.Mode(s.Times())
	days := make(map[string]bool)
	for _, t := range s.Times() {
		days[timetricks.UniqueDay(t)] = true
	}
	st.Days = len(days)
	return st
}

func (r Report) String() string {
	b := &strings.Builder{}
	for _, in := range r.Inputs {
		if in.Points == 0 {
			fmt.Fprintf(b, "%-12s no data\n", in.Kind.String()+":")
			continue
		}
		fmt.Fprintf(b, "%-12s %4d points over %d days  %s .. %s  every %s\n", in.Kind.String()+":", in.Points, in.Days,
			in.First.Format(time.RFC3339), in.Last.Format(time.RFC3339), in.Cadence)
	}
	fmt.Fprintf(b, "temperature estimates: %d/%d\n", r.EstimatesOK, r.Estimates)
	fmt.Fprintf(b, "aligned rows: %d (%d tide points dropped)\n", r.Rows, r.Dropped)
	if r.Rows > 0 {
		fmt.Fprintf(b, "max wave match gap: %s at %s\n", r.MaxWaveGap, r.MaxWaveGapRow.Format(time.RFC3339))
	}
	return b.String()
}
