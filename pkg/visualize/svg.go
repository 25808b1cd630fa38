// Package visualize renders aligned tables as standalone SVG documents. Each
// consumer type has an Encode(io.Writer) (int, error) method.
package visualize

import (
	"fmt"
	"io"
	"math"
	"time"
)

const (
	width  = 1200
	height = 400
	margin = 50

	timeLabelFmt = "Jan 02 15:04"
)

// Encoder is implemented by every consumer in this package.
type Encoder interface {
	Encode(w io.Writer) (int, error)
}

// svgWriter accumulates bytes written and keeps the first error, so a drawing
// routine can emit many fragments and check once at the end.
type svgWriter struct {
	w   io.Writer
	n   int
	err error
}

func (s *svgWriter) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	n, err := fmt.Fprintf(s.w, format, args...)
	s.n += n
	s.err = err
}

func (s *svgWriter) open(w, h int) {
	s.printf(`<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" font-family="sans-serif" font-size="12">`, w, h)
}

func (s *svgWriter) close() (int, error) {
	s.printf(`</svg>`)
	return s.n, s.err
}

// frame maps times and values onto a plotting rectangle.
type frame struct {
	x0, y0, w, h int
	tmin, tmax   time.Time
	vmin, vmax   float64
}

func newFrame(x0, y0, w, h int, tmin, tmax time.Time, vmin, vmax float64) frame {
	if !tmax.After(tmin) {
		tmax = tmin.Add(time.Hour)
	}
	if vmax <= vmin {
		vmin, vmax = vmin-0.1, vmax+0.1
	}
	return frame{x0, y0, w, h, tmin, tmax, vmin, vmax}
}

func (f frame) timeToX(t time.Time) float64 {
	frac := float64(t.Sub(f.tmin)) / float64(f.tmax.Sub(f.tmin))
	return float64(f.x0) + frac*float64(f.w)
}

func (f frame) valueToY(v float64) float64 {
	frac := (v - f.vmin) / (f.vmax - f.vmin)
	return float64(f.y0+f.h) - frac*float64(f.h)
}

// axes draws the frame border with min and max labels on both axes.
func (f frame) axes(s *svgWriter, unit string) {
	s.printf(`<rect class="frame" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#555"/>`,
		f.x0, f.y0, f.w, f.h)
	s.printf(`<text x="%d" y="%d" text-anchor="end">%.2f %s</text>`, f.x0-4, f.y0+10, f.vmax, unit)
	s.printf(`<text x="%d" y="%d" text-anchor="end">%.2f %s</text>`, f.x0-4, f.y0+f.h, f.vmin, unit)
	s.printf(`<text x="%d" y="%d">%s</text>`, f.x0, f.y0+f.h+16, f.tmin.Format(timeLabelFmt))
	s.printf(`<text x="%d" y="%d" text-anchor="end">%s</text>`, f.x0+f.w, f.y0+f.h+16, f.tmax.Format(timeLabelFmt))
}

func (f frame) polyline(s *svgWriter, class, color string, times []time.Time, values []float64) {
	s.printf(`<polyline class="%s" fill="none" stroke="%s" stroke-width="1.5" points="`, class, color)
	for i := range times {
		s.printf("%.1f,%.1f ", f.timeToX(times[i]), f.valueToY(values[i]))
	}
	s.printf(`"/>`)
}

// span returns the smallest and largest of values.
func span(values ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 0) {
		return 0, 1
	}
	return lo, hi
}

// TempColor buckets a temperature into a blue shade, cooler being deeper.
func TempColor(celsius float64) string {
	switch {
	case celsius < 16:
		return "#2c3e50"
	case celsius < 18:
		return "#3b5998"
	case celsius < 20:
		return "#4a90e2"
	case celsius < 22:
		return "#50c9ba"
	default:
		return "#8be0d4"
	}
}

// coolWarm maps frac in [0,1] along a blue-white-red ramp.
func coolWarm(frac float64) string {
	frac = math.Max(0, math.Min(1, frac))
	cool := [3]float64{59, 76, 192}
	mid := [3]float64{221, 221, 221}
	warm := [3]float64{180, 4, 38}

	from, to, f := cool, mid, frac*2
	if frac > 0.5 {
		from, to, f = mid, warm, (frac-0.5)*2
	}
	var c [3]int
	for i := range c {
		c[i] = int(math.Round(from[i] + f*(to[i]-from[i])))
	}
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
