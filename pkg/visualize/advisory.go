package visualize

import (
	"errors"
	"io"
	"time"

	"github.com/spencer-p/oceantrends/pkg/align"
)

// Window is a period to highlight, such as a tsunami advisory.
type Window struct {
	Start, End time.Time
}

// Advisory plots wave height over the last week and, zoomed, the last two
// days, marking spikes and an optional advisory window.
type Advisory struct {
	table  align.Table
	spikes align.Table
	window *Window
}

func NewAdvisory(table, spikes align.Table, window *Window) *Advisory {
	return &Advisory{table: table, spikes: spikes, window: window}
}

func (img *Advisory) Encode(w io.Writer) (int, error) {
	if len(img.table) == 0 {
		return 0, errors.New("nothing to plot")
	}
	const panelHeight = 300
	s := &svgWriter{w: w}
	s.open(width, panelHeight*2+margin)
	s.printf(`<text class="title" x="%d" y="%d" font-size="16">Wave Height with Tsunami Advisory and Wave Spikes Highlighted</text>`,
		margin*2, 24)

	last := img.table[len(img.table)-1].Time
	img.panel(s, "Wave Height - Past 1 Week", last.Add(-7*24*time.Hour), last, margin)
	img.panel(s, "Wave Height - Past 2 Days (Zoomed)", last.Add(-2*24*time.Hour), last, margin+panelHeight)

	return s.close()
}

func (img *Advisory) panel(s *svgWriter, title string, from, to time.Time, top int) {
	rows := since(img.table, from)
	spikes := since(img.spikes, from)
	if len(rows) == 0 {
		return
	}
	lo, hi := span(rows.WaveHeights())
	f := newFrame(margin*2, top+30, width-margin*3, 300-90, from, to, lo, hi)

	if img.window != nil && img.window.End.After(from) && img.window.Start.Before(to) {
		start, end := img.window.Start, img.window.End
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		x1, x2 := f.timeToX(start), f.timeToX(end)
		s.printf(`<rect class="advisory" fill="red" fill-opacity="10%%" x="%.1f" y="%d" width="%.1f" height="%d"/>`,
			x1, f.y0, x2-x1, f.h)
	}

	f.polyline(s, "wave", "seagreen", rows.Times(), rows.WaveHeights())
	for _, r := range spikes {
		s.printf(`<circle class="spike" fill="red" r="4" cx="%.1f" cy="%.1f"><title>%s %.2f m</title></circle>`,
			f.timeToX(r.Time), f.valueToY(r.WaveHeight), r.Time.Format(timeLabelFmt), r.WaveHeight)
	}
	f.axes(s, "m")
	s.printf(`<text class="panel-title" x="%d" y="%d" font-size="14">%s</text>`, f.x0, f.y0-8, title)
}

// since returns the rows at or after t.
func since(table align.Table, t time.Time) align.Table {
	for i, r := range table {
		if !r.Time.Before(t) {
			return table[i:]
		}
	}
	return nil
}
