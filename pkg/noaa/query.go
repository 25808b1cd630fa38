package noaa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spencer-p/oceantrends/pkg/fetch"
	"github.com/spencer-p/oceantrends/pkg/series"
	"github.com/spencer-p/oceantrends/pkg/timetricks"
)

const (
	NOAA_URL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"
	TIME_FMT = "20060102"

	sourceName = "noaa"
)

// TideClient fetches hourly tide predictions.
type TideClient struct {
	Getter   *fetch.Getter
	BaseURL  string
	Location *time.Location

	now func() time.Time
}

// NewTideClient returns a client that interprets station times in loc.
func NewTideClient(g *fetch.Getter, loc *time.Location) *TideClient {
	return &TideClient{
		Getter:   g,
		BaseURL:  NOAA_URL,
		Location: loc,
		now:      time.Now,
	}
}

// FetchTide returns hourly predictions for the last days calendar days,
// today included. Any failure is a fetch.SourceUnavailableError.
func (c *TideClient) FetchTide(ctx context.Context, station string, days int) (series.Series, error) {
	today := timetricks.TrimClock(c.clock().In(c.Location))
	q := PredictionQuery{
		Start:   today.AddDate(0, 0, -(days - 1)),
		End:     today,
		Station: station,
	}
	preds, err := c.GetPredictions(ctx, &q)
	if err != nil {
		return series.Series{}, err
	}

	points := make([]series.Point, len(preds))
	for i, p := range preds {
		points[i] = series.Point{
			Time:  p.Time.In(c.Location),
			Value: float64(p.Height),
		}
	}
	s, err := series.New(series.Tide, points)
	if err != nil {
		return series.Series{}, fetch.Unavailable(sourceName, err)
	}
	return s, nil
}

// GetPredictions performs the raw query.
func (c *TideClient) GetPredictions(ctx context.Context, q *PredictionQuery) (Predictions, error) {
	addr, err := q.url(c.BaseURL)
	if err != nil {
		return nil, fetch.Unavailable(sourceName, err)
	}

	body, err := c.Getter.Get(ctx, sourceName, addr.String())
	if err != nil {
		return nil, err
	}

	var result NOAAResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fetch.Unavailable(sourceName, fmt.Errorf("decode predictions: %w", err))
	}
	if result.Error != nil {
		return nil, fetch.Unavailable(sourceName, errors.New(result.Error.Message))
	}
	if len(result.Predictions) == 0 {
		return nil, fetch.Unavailable(sourceName, errors.New("no predictions returned"))
	}
	return result.Predictions, nil
}

func (c *TideClient) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (q *PredictionQuery) url(base string) (*url.URL, error) {
	// Build request URL first
	addr, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	addr.RawQuery = q.build().Encode()
	return addr, nil
}

func (q *PredictionQuery) build() url.Values {
	vals := make(url.Values)
	vals.Add("begin_date", q.Start.Format(TIME_FMT))
	vals.Add("end_date", q.End.Format(TIME_FMT))
	vals.Add("station", q.Station)
	vals.Add("product", "predictions")
	vals.Add("datum", "MLLW")
	vals.Add("time_zone", "lst_ldt")
	vals.Add("interval", "h")
	vals.Add("units", "metric")
	vals.Add("format", "json")
	return vals
}
