package pipeline

import (
	"context"

	"github.com/spencer-p/oceantrends/pkg/fetch"
	"github.com/spencer-p/oceantrends/pkg/ndbc"
	"github.com/spencer-p/oceantrends/pkg/noaa"
	"github.com/spencer-p/oceantrends/pkg/openmeteo"
	"github.com/spencer-p/oceantrends/pkg/series"
)

// TideSource provides hourly tide heights.
type TideSource interface {
	FetchTide(ctx context.Context, station string, days int) (series.Series, error)
}

// WaveSource provides wave heights. A failure yields an empty series.
type WaveSource interface {
	FetchWave(ctx context.Context, station string, days int) series.Series
}

// TemperatureSource provides daily temperatures.
type TemperatureSource interface {
	FetchTemperature(ctx context.Context, latitude, longitude float64, days int) (series.Series, error)
}

// Sources are the three upstream feeds of a run.
type Sources struct {
	Tide        TideSource
	Wave        WaveSource
	Temperature TemperatureSource
}

// NewSources builds the live NOAA, NDBC and Open-Meteo clients on one shared
// HTTP getter.
func NewSources(cfg Config) (Sources, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Sources{}, err
	}
	g := fetch.NewGetter(cfg.RequestTimeout, cfg.Retries, cfg.RetryBackoff)
	return Sources{
		Tide:        noaa.NewTideClient(g, loc),
		Wave:        ndbc.NewWaveClient(g),
		Temperature: openmeteo.NewTemperatureClient(g, loc),
	}, nil
}
