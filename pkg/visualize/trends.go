package visualize

import (
	"errors"
	"io"

	"github.com/spencer-p/oceantrends/pkg/align"
	"github.com/spencer-p/oceantrends/pkg/sunset"
)

// Trends plots tide and wave height over time with nights shaded.
type Trends struct {
	table align.Table
	place sunset.Place
}

func NewTrends(table align.Table, place sunset.Place) *Trends {
	return &Trends{table: table, place: place}
}

func (img *Trends) Encode(w io.Writer) (int, error) {
	if len(img.table) == 0 {
		return 0, errors.New("nothing to plot")
	}
	s := &svgWriter{w: w}
	s.open(width, height)

	times := img.table.Times()
	tide := make([]float64, len(img.table))
	for i, r := range img.table {
		tide[i] = r.TideHeight
	}
	wave := img.table.WaveHeights()
	lo, hi := span(tide, wave)

	tmin, tmax := times[0], times[len(times)-1]
	f := newFrame(margin*2, margin, width-margin*3, height-margin*2, tmin, tmax, lo, hi)

	// Draw the night time shadows first so the lines sit on top.
	if img.place.Location != nil {
		for _, n := range sunset.Nights(tmin, tmax, img.place) {
			x1, x2 := f.timeToX(n.Start), f.timeToX(n.End)
			s.printf(`<rect class="night" fill="blue" fill-opacity="10%%" x="%.1f" y="%d" width="%.1f" height="%d"/>`,
				x1, f.y0, x2-x1, f.h)
		}
	}

	f.polyline(s, "tide", "dodgerblue", times, tide)
	f.polyline(s, "wave", "seagreen", times, wave)
	f.axes(s, "m")

	s.printf(`<text class="title" x="%d" y="%d" font-size="16">Tide and Wave Height Over Time</text>`, f.x0, margin-20)
	s.printf(`<text x="%d" y="%d" fill="dodgerblue">Tide Height (m)</text>`, f.x0+f.w-220, margin-20)
	s.printf(`<text x="%d" y="%d" fill="seagreen">Wave Height (m)</text>`, f.x0+f.w-100, margin-20)

	return s.close()
}
