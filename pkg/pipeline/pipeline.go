// Package pipeline runs fetch, interpolate, align, validate and spike
// detection once, and renders the result through a named consumer.
package pipeline

import (
	"context"
	"log"

	"github.com/spencer-p/oceantrends/pkg/align"
	"github.com/spencer-p/oceantrends/pkg/metrics"
	"github.com/spencer-p/oceantrends/pkg/series"
	"github.com/spencer-p/oceantrends/pkg/spikes"
)

// Pipeline is a configured run over a set of sources.
type Pipeline struct {
	cfg     Config
	sources Sources
	aligner *align.Aligner
}

// Result is everything a consumer may want from a run.
type Result struct {
	Tide        series.Series
	Wave        series.Series
	Temperature series.Series
	Estimates   []align.Estimate

	Table     align.Table
	Spikes    align.Table
	Threshold float64
}

func New(cfg Config, sources Sources) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		sources: sources,
		aligner: align.NewAligner(cfg.Tolerance),
	}
}

// Run fetches the three series and aligns them. It fails with a
// fetch.SourceUnavailableError if tide or temperature cannot be fetched and
// with align.ErrEmptyDataset if no row survives alignment. An unavailable
// wave feed shows up as the latter.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	tide, err := p.sources.Tide.FetchTide(ctx, p.cfg.TideStation, p.cfg.Days)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] fetched %d tide points from station %s", tide.Len(), p.cfg.TideStation)

	wave := p.sources.Wave.FetchWave(ctx, p.cfg.WaveStation, p.cfg.Days)
	log.Printf("[INFO] fetched %d wave points from buoy %s", wave.Len(), p.cfg.WaveStation)

	temp, err := p.sources.Temperature.FetchTemperature(ctx, p.cfg.Latitude, p.cfg.Longitude, p.cfg.Days)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] fetched %d daily temperatures", temp.Len())

	estimates := align.Interpolate(tide.Times(), temp)
	table, err := align.Validate(p.aligner.Align(tide, wave, estimates))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Tide:        tide,
		Wave:        wave,
		Temperature: temp,
		Estimates:   estimates,
		Table:       table,
	}
	result.Respike(p.cfg.SpikeK)
	log.Printf("[INFO] aligned %d rows, %d spikes above %.2f m", len(table), len(result.Spikes), result.Threshold)
	metrics.ObserveAlignment(len(result.Table), len(result.Spikes))
	return result, nil
}

// Respike recomputes Spikes and Threshold for multiplier k.
func (r *Result) Respike(k float64) {
	r.Spikes = spikes.Detect(r.Table, k)
	r.Threshold, _ = spikes.Threshold(r.Table, k)
}
