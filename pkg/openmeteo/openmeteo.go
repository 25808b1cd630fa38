// Package openmeteo fetches daily air temperature extremes from the
// Open-Meteo historical weather API and reduces them to one daily mean.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spencer-p/oceantrends/pkg/fetch"
	"github.com/spencer-p/oceantrends/pkg/series"
	"github.com/spencer-p/oceantrends/pkg/timetricks"
)

const (
	ARCHIVE_URL = "https://archive-api.open-meteo.com/v1/archive"
	dateFormat  = "2006-01-02"

	sourceName = "open-meteo"
)

// Response is the subset of the archive API response that is read.
type Response struct {
	Timezone string `json:"timezone"`
	Daily    struct {
		Time []string   `json:"time"`
		Max  []*float64 `json:"temperature_2m_max"`
		Min  []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// TemperatureClient fetches daily temperatures for a coordinate.
type TemperatureClient struct {
	Getter   *fetch.Getter
	BaseURL  string
	Location *time.Location

	now func() time.Time
}

// NewTemperatureClient returns a client that requests days in loc's calendar.
func NewTemperatureClient(g *fetch.Getter, loc *time.Location) *TemperatureClient {
	return &TemperatureClient{
		Getter:   g,
		BaseURL:  ARCHIVE_URL,
		Location: loc,
		now:      time.Now,
	}
}

// FetchTemperature returns one point per day for the last days days, today
// included, stamped at local midnight with the mean of that day's maximum and
// minimum. Days the archive has not filled in yet are omitted.
func (c *TemperatureClient) FetchTemperature(ctx context.Context, latitude, longitude float64, days int) (series.Series, error) {
	end := timetricks.TrimClock(c.clock().In(c.Location))
	start := end.AddDate(0, 0, -(days - 1))

	addr, err := url.Parse(c.BaseURL)
	if err != nil {
		return series.Series{}, fetch.Unavailable(sourceName, err)
	}
	vals := make(url.Values)
	vals.Add("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	vals.Add("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	vals.Add("start_date", start.Format(dateFormat))
	vals.Add("end_date", end.Format(dateFormat))
	vals.Add("daily", "temperature_2m_max,temperature_2m_min")
	vals.Add("timezone", c.Location.String())
	addr.RawQuery = vals.Encode()

	body, err := c.Getter.Get(ctx, sourceName, addr.String())
	if err != nil {
		return series.Series{}, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return series.Series{}, fetch.Unavailable(sourceName, fmt.Errorf("decode daily temperatures: %w", err))
	}
	s, err := resp.Series(c.Location)
	if err != nil {
		return series.Series{}, fetch.Unavailable(sourceName, err)
	}
	return s, nil
}

// Series converts the daily arrays into a temperature series with dates read
// in loc.
func (r *Response) Series(loc *time.Location) (series.Series, error) {
	if r.Error {
		return series.Series{}, errors.New(r.Reason)
	}
	n := len(r.Daily.Time)
	if len(r.Daily.Max) != n || len(r.Daily.Min) != n {
		return series.Series{}, fmt.Errorf("daily arrays disagree in length: %d times, %d max, %d min",
			n, len(r.Daily.Max), len(r.Daily.Min))
	}

	points := make([]series.Point, 0, n)
	for i, day := range r.Daily.Time {
		if r.Daily.Max[i] == nil || r.Daily.Min[i] == nil {
			continue
		}
		midnight, err := time.ParseInLocation(dateFormat, day, loc)
		if err != nil {
			return series.Series{}, fmt.Errorf("date %q not in fmt %q: %w", day, dateFormat, err)
		}
		points = append(points, series.Point{
			Time:  midnight,
			Value: (*r.Daily.Max[i] + *r.Daily.Min[i]) / 2,
		})
	}
	return series.New(series.Temperature, points)
}

func (c *TemperatureClient) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
