// Package ndbc reads significant wave height from the National Data Buoy
// Center's realtime2 standard meteorological text files.
package ndbc

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spencer-p/oceantrends/pkg/fetch"
	"github.com/spencer-p/oceantrends/pkg/series"
)

const (
	NDBC_URL = "https://www.ndbc.noaa.gov/data/realtime2"

	TorreyPinesOuter = "46225"

	sourceName = "ndbc"

	// Column positions in the standard meteorological file.
	colYear   = 0
	colMonth  = 1
	colDay    = 2
	colHour   = 3
	colMinute = 4
	colWVHT   = 8
)

// missing are the codes NDBC writes in place of a wave height reading.
var missing = map[string]bool{
	"MM":     true,
	"99.0":   true,
	"99.00":  true,
	"9999":   true,
	"9999.0": true,
}

// WaveClient fetches buoy wave reports.
type WaveClient struct {
	Getter  *fetch.Getter
	BaseURL string

	now func() time.Time
}

func NewWaveClient(g *fetch.Getter) *WaveClient {
	return &WaveClient{
		Getter:  g,
		BaseURL: NDBC_URL,
		now:     time.Now,
	}
}

// FetchWave returns the station's wave heights from the last days days. Buoys
// go quiet often enough that a failure here is not fatal: it is logged and an
// empty series is returned.
func (c *WaveClient) FetchWave(ctx context.Context, station string, days int) series.Series {
	addr := fmt.Sprintf("%s/%s.txt", strings.TrimSuffix(c.BaseURL, "/"), station)
	body, err := c.Getter.Get(ctx, sourceName, addr)
	if err != nil {
		log.Printf("[WARN] wave data unavailable, continuing without it: %v", err)
		return series.Empty(series.Wave)
	}

	cutoff := c.clock().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	s, err := Parse(bytes.NewReader(body), cutoff)
	if err != nil {
		log.Printf("[WARN] wave data from station %s unreadable, continuing without it: %v", station, err)
		return series.Empty(series.Wave)
	}
	return s
}

func (c *WaveClient) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Parse reads a realtime2 .txt file. Header lines start with '#'. Truncated
// rows, rows with a missing or unparsable wave height, and rows before cutoff
// are dropped. Times are UTC.
func Parse(r io.Reader, cutoff time.Time) (series.Series, error) {
	var points []series.Point
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) <= colWVHT {
			log.Printf("[WARN] skipping line %d: %d columns, want at least %d", line, len(fields), colWVHT+1)
			continue
		}

		raw := fields[colWVHT]
		if missing[raw] {
			continue
		}
		height, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}

		ts, err := rowTime(fields)
		if err != nil {
			continue
		}
		if ts.Before(cutoff) {
			continue
		}
		points = append(points, series.Point{Time: ts, Value: height})
	}
	if err := scanner.Err(); err != nil {
		return series.Series{}, err
	}
	return series.New(series.Wave, points)
}

func rowTime(fields []string) (time.Time, error) {
	var parts [5]int
	for i, col := range []int{colYear, colMonth, colDay, colHour, colMinute} {
		n, err := strconv.Atoi(fields[col])
		if err != nil {
			return time.Time{}, fmt.Errorf("column %d %q not an integer: %w", col, fields[col], err)
		}
		parts[i] = n
	}
	year, month, day, hour, minute := parts[0], parts[1], parts[2], parts[3], parts[4]
	// Some older files carry two-digit years.
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid date %v", parts)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}
