package pipeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spencer-p/oceantrends/pkg/align"
	"github.com/spencer-p/oceantrends/pkg/diagnostics"
	"github.com/spencer-p/oceantrends/pkg/sunset"
	"github.com/spencer-p/oceantrends/pkg/terminal"
	"github.com/spencer-p/oceantrends/pkg/visualize"
)

// Consumer names.
const (
	Trends      = "trends"
	Advisory    = "advisory"
	Scatter     = "scatter"
	Swell       = "swell"
	Terminal    = "terminal"
	Diagnostics = "diagnostics"
	JSON        = "json"
)

var Consumers = []string{Trends, Advisory, Scatter, Swell, Terminal, Diagnostics, JSON}

func KnownConsumer(name string) bool {
	for _, c := range Consumers {
		if c == name {
			return true
		}
	}
	return false
}

// ContentType is the media type of a consumer's output.
func ContentType(consumer string) string {
	switch consumer {
	case Trends, Advisory, Scatter, Swell:
		return "image/svg+xml"
	case JSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Output is the JSON form of a Result.
type Output struct {
	Aligned   align.Table `json:"aligned"`
	Spikes    align.Table `json:"spikes"`
	Threshold float64     `json:"threshold_m"`
}

// Render writes r to w in the form named by consumer.
func Render(w io.Writer, consumer string, r *Result, cfg Config) error {
	switch consumer {
	case Trends:
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		place := sunset.Place{Lat: cfg.Latitude, Long: cfg.Longitude, Location: loc}
		return encode(w, visualize.NewTrends(r.Table, place))
	case Advisory:
		window, err := cfg.AdvisoryWindow()
		if err != nil {
			return err
		}
		return encode(w, visualize.NewAdvisory(r.Table, r.Spikes, window))
	case Scatter:
		return encode(w, visualize.NewScatter(r.Table))
	case Swell:
		return encode(w, visualize.NewSwell(r.Table))
	case Terminal:
		return terminal.Render(w, r.Table, r.Spikes, r.Threshold, terminal.DefaultOptions)
	case Diagnostics:
		report := diagnostics.Summarize(r.Tide, r.Wave, r.Temperature, r.Estimates, r.Table)
		_, err := io.WriteString(w, report.String())
		return err
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Output{Aligned: r.Table, Spikes: r.Spikes, Threshold: r.Threshold})
	default:
		return fmt.Errorf("unknown consumer %q", consumer)
	}
}

func encode(w io.Writer, e visualize.Encoder) error {
	_, err := e.Encode(w)
	return err
}
