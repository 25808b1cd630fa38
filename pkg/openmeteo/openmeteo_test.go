package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/oceantrends/pkg/fetch"
)

const sample = `{
  "latitude": 32.92, "longitude": -117.25, "timezone": "America/Los_Angeles",
  "daily": {
    "time": ["2025-07-27", "2025-07-28", "2025-07-29"],
    "temperature_2m_max": [22.0, 24.5, null],
    "temperature_2m_min": [16.0, 17.5, 18.0]
  }
}`

func TestResponseSeries(t *testing.T) {
	loc := time.FixedZone("PDT", -7*60*60)
	var resp Response
	if err := json.Unmarshal([]byte(sample), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := resp.Series(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantTimes := []time.Time{
		time.Date(2025, time.July, 27, 0, 0, 0, 0, loc),
		time.Date(2025, time.July, 28, 0, 0, 0, 0, loc),
	}
	if diff := cmp.Diff(wantTimes, s.Times()); diff != "" {
		t.Errorf("wrong days (-want,+got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{19.0, 21.0}, s.Values()); diff != "" {
		t.Errorf("wrong means (-want,+got):\n%s", diff)
	}
}

func TestResponseSeriesMismatched(t *testing.T) {
	var resp Response
	resp.Daily.Time = []string{"2025-07-27"}
	if _, err := resp.Series(time.UTC); err == nil {
		t.Errorf("expected error for mismatched arrays")
	}
}

func TestFetchTemperature(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		fmt.Fprint(w, sample)
	}))
	defer srv.Close()

	c := NewTemperatureClient(fetch.NewGetter(time.Second, 0, 0), time.UTC)
	c.BaseURL = srv.URL
	c.now = func() time.Time { return time.Date(2025, time.July, 29, 12, 0, 0, 0, time.UTC) }

	s, err := c.FetchTemperature(context.Background(), 32.9211, -117.2526, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("got %d days, want 2", s.Len())
	}

	want := map[string][]string{
		"latitude":   {"32.9211"},
		"longitude":  {"-117.2526"},
		"start_date": {"2025-07-27"},
		"end_date":   {"2025-07-29"},
		"daily":      {"temperature_2m_max,temperature_2m_min"},
		"timezone":   {"UTC"},
	}
	if diff := cmp.Diff(want, query); diff != "" {
		t.Errorf("wrong query (-want,+got):\n%s", diff)
	}
}

func TestFetchTemperatureUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":true,"reason":"Parameter 'start_date' is out of allowed range"}`)
	}))
	defer srv.Close()

	c := NewTemperatureClient(fetch.NewGetter(time.Second, 0, 0), time.UTC)
	c.BaseURL = srv.URL
	if _, err := c.FetchTemperature(context.Background(), 0, 0, 7); !errors.Is(err, fetch.ErrSourceUnavailable) {
		t.Errorf("got %v, want ErrSourceUnavailable", err)
	}
}
