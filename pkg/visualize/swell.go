package visualize

import (
	"errors"
	"io"
	"math"

	"github.com/spencer-p/oceantrends/pkg/align"
)

const (
	beachWidth   = 10.0
	wavelength   = 4.0
	driftPerStep = 0.1
	swellSamples = 100
	zmin, zmax   = -1.0, 3.0
)

// Swell animates a cross-section of the sea surface, one frame per row:
// z(x) = tide + wave*sin(2π(x - 0.1*frame)/4). The water is tinted by
// temperature.
type Swell struct {
	table align.Table
}

func NewSwell(table align.Table) *Swell {
	return &Swell{table: table}
}

// Surface returns the water height at each of n evenly spaced positions
// across the beach for a given frame.
func Surface(r align.Record, frame, n int) []float64 {
	z := make([]float64, n)
	for i := range z {
		x := beachWidth * float64(i) / float64(n-1)
		z[i] = r.TideHeight + r.WaveHeight*math.Sin(2*math.Pi*(x-driftPerStep*float64(frame))/wavelength)
	}
	return z
}

func (img *Swell) Encode(w io.Writer) (int, error) {
	if len(img.table) == 0 {
		return 0, errors.New("nothing to plot")
	}
	s := &svgWriter{w: w}
	s.open(width, height)
	s.printf(`<rect width="%d" height="%d" fill="#002b36"/>`, width, height)

	plotW, plotH := width-margin*2, height-margin*2
	toX := func(i int) float64 { return float64(margin) + float64(i)/float64(swellSamples-1)*float64(plotW) }
	toY := func(z float64) float64 {
		z = math.Max(zmin, math.Min(zmax, z))
		return float64(margin+plotH) - (z-zmin)/(zmax-zmin)*float64(plotH)
	}

	step := FrameInterval.Seconds()
	for i, r := range img.table {
		z := Surface(r, i, swellSamples)
		s.printf(`<g class="frame" visibility="hidden">`)
		s.printf(`<path fill="%s" fill-opacity="0.9" d="M %d,%d `, TempColor(r.Temperature), margin, margin+plotH)
		for j, v := range z {
			s.printf("L %.1f,%.1f ", toX(j), toY(v))
		}
		s.printf(`L %d,%d z"/>`, margin+plotW, margin+plotH)
		s.printf(`<text x="%d" y="%d" fill="white">%s  tide %.2f m  wave %.2f m  %.1f°C</text>`,
			margin, margin-16, r.Time.Format("Jan 02, 2006 15:04"), r.TideHeight, r.WaveHeight, r.Temperature)
		if i+1 < len(img.table) {
			s.printf(`<set attributeName="visibility" to="visible" begin="%.1fs" dur="%.1fs"/></g>`, float64(i)*step, step)
		} else {
			s.printf(`<set attributeName="visibility" to="visible" begin="%.1fs" fill="freeze"/></g>`, float64(i)*step)
		}
	}

	return s.close()
}
