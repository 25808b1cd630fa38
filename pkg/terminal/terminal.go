// Package terminal renders an aligned table as braille line charts for a
// terminal, with a short styled summary underneath.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/spencer-p/oceantrends/pkg/align"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	infoStyle  = lipgloss.NewStyle().Faint(true)
	spikeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	boxStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

// Options sizes each chart in terminal cells.
type Options struct {
	Width  int
	Height int
}

var DefaultOptions = Options{Width: 72, Height: 12}

// Render writes tide and wave charts followed by a summary of the table and
// its spikes.
func Render(w io.Writer, table, spikes align.Table, threshold float64, opts Options) error {
	if len(table) == 0 {
		return errors.New("nothing to plot")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions
	}

	tide := make([]float64, len(table))
	for i, r := range table {
		tide[i] = r.TideHeight
	}
	times := table.Times()

	b := &strings.Builder{}
	b.WriteString(titleStyle.Render("Tide height (m)"))
	b.WriteString("\n")
	b.WriteString(chart(times, tide, opts))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Wave height (m)"))
	b.WriteString("\n")
	b.WriteString(chart(times, table.WaveHeights(), opts))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(summary(table, spikes, threshold)))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func chart(times []time.Time, values []float64, opts Options) string {
	minTime, maxTime := times[0], times[len(times)-1]
	if !maxTime.After(minTime) {
		maxTime = minTime.Add(time.Hour)
	}
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if minV == maxV {
		maxV += 0.1
		minV -= 0.1
	}

	loc := times[0].Location()
	lc := timeserieslinechart.New(opts.Width, opts.Height)
	lc.SetTimeRange(minTime, maxTime)
	lc.SetViewTimeAndYRange(minTime, maxTime, minV, maxV)

	// One label per day at most.
	days := int(maxTime.Sub(minTime).Hours() / 24)
	xStep := 1
	if days > 0 && days < lc.GraphWidth() {
		xStep = lc.GraphWidth() / days
	}
	lc.SetXStep(xStep)
	lc.Model.XLabelFormatter = func(i int, v float64) string {
		return time.Unix(int64(v), 0).In(loc).Format("01/02")
	}
	for i, t := range times {
		lc.Push(timeserieslinechart.TimePoint{Time: t, Value: values[i]})
	}
	lc.DrawBraille()
	return lc.View()
}

func summary(table, spikes align.Table, threshold float64) string {
	b := &strings.Builder{}
	first, last := table[0].Time, table[len(table)-1].Time
	fmt.Fprintf(b, "%d aligned rows, %s to %s\n", len(table),
		first.Format("Jan 02 15:04"), last.Format("Jan 02 15:04 MST"))
	if len(spikes) == 0 {
		b.WriteString(infoStyle.Render("No wave spikes"))
		return b.String()
	}
	fmt.Fprintf(b, "%s above %.2f m:", spikeStyle.Render(fmt.Sprintf("%d wave spikes", len(spikes))), threshold)
	for _, r := range spikes {
		fmt.Fprintf(b, "\n  %s  %.2f m", r.Time.Format("Jan 02 15:04"), r.WaveHeight)
	}
	return b.String()
}
