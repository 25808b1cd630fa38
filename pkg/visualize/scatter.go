package visualize

import (
	"errors"
	"io"
	"time"

	"github.com/spencer-p/oceantrends/pkg/align"
)

// FrameInterval is how long each row stays on screen in the animations.
const FrameInterval = 100 * time.Millisecond

// Scatter animates tide height against wave height, adding one point per row
// in time order, colored by temperature.
type Scatter struct {
	table align.Table
}

func NewScatter(table align.Table) *Scatter {
	return &Scatter{table: table}
}

func (img *Scatter) Encode(w io.Writer) (int, error) {
	if len(img.table) == 0 {
		return 0, errors.New("nothing to plot")
	}
	const size = 600
	s := &svgWriter{w: w}
	s.open(size+margin*2, size)

	var tide, wave, temp []float64
	for _, r := range img.table {
		tide = append(tide, r.TideHeight)
		wave = append(wave, r.WaveHeight)
		temp = append(temp, r.Temperature)
	}
	xlo, xhi := span(tide)
	ylo, yhi := span(wave)
	tlo, thi := span(temp)
	xlo, xhi, ylo, yhi = xlo-0.2, xhi+0.2, ylo-0.2, yhi+0.2

	plot := size - margin*2
	toX := func(v float64) float64 { return float64(margin*2) + (v-xlo)/(xhi-xlo)*float64(plot) }
	toY := func(v float64) float64 { return float64(margin+plot) - (v-ylo)/(yhi-ylo)*float64(plot) }

	s.printf(`<rect class="frame" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#555"/>`, margin*2, margin, plot, plot)
	s.printf(`<text class="title" x="%d" y="%d" font-size="16">Tide vs. Wave Height</text>`, margin*2, margin-20)
	s.printf(`<text x="%d" y="%d">Tide Height (m): %.2f to %.2f</text>`, margin*2, margin+plot+20, xlo, xhi)
	s.printf(`<text x="%d" y="%d" transform="rotate(-90 %d %d)">Wave Height (m): %.2f to %.2f</text>`,
		margin, margin+plot, margin, margin+plot, ylo, yhi)

	step := FrameInterval.Seconds()
	for i, r := range img.table {
		frac := 0.5
		if thi > tlo {
			frac = (r.Temperature - tlo) / (thi - tlo)
		}
		begin := float64(i) * step
		s.printf(`<circle class="point" r="5" cx="%.1f" cy="%.1f" fill="%s" opacity="0">`,
			toX(r.TideHeight), toY(r.WaveHeight), coolWarm(frac))
		s.printf(`<set attributeName="opacity" to="1" begin="%.1fs" fill="freeze"/></circle>`, begin)

		// The timestamp label for this frame replaces the previous one.
		s.printf(`<text class="clock" x="%d" y="%d" visibility="hidden">%s`, margin*2+8, margin+18, r.Time.Format("Jan 02 2006 15:04"))
		if i+1 < len(img.table) {
			s.printf(`<set attributeName="visibility" to="visible" begin="%.1fs" dur="%.1fs"/></text>`, begin, step)
		} else {
			s.printf(`<set attributeName="visibility" to="visible" begin="%.1fs" fill="freeze"/></text>`, begin)
		}
	}

	return s.close()
}
