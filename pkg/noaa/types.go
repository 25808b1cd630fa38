package noaa

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const predTimeFormat = "2006-01-02 15:04"

// Prediction holds a single hourly tide prediction.
type Prediction struct {
	// Station wall clock time of the prediction, zone not yet applied
	Time Time `json:"t"`
	// Height in meters above MLLW
	Height Height `json:"v"`
}

// Verify the custom types can be unmarshaled
var _ json.Unmarshaler = &Time{}
var _ json.Unmarshaler = new(Height)

// Predictions is a time series of Prediction.
type Predictions []Prediction

// NOAAResult is the data type returned by the NOAA API. On failure the API
// answers 200 with only Error set.
type NOAAResult struct {
	Predictions Predictions `json:"predictions"`
	Error       *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// PredictionQuery is used to query tide data at a station in a given time
// window; see TideClient.FetchTide.
type PredictionQuery struct {
	Start   time.Time
	End     time.Time
	Station string
}

const (
	TorreyPines = "9410230" // La Jolla, Scripps Pier
	SantaCruz   = "9413745"
)

// Time is a station wall clock reading. NOAA sends "lst_ldt" times without an
// offset, so the location is applied afterwards with In.
type Time time.Time

func (t *Time) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("prediction time %q not string: %w", buf, err)
	}
	parsed, err := time.ParseInLocation(predTimeFormat, s, time.UTC)
	if err != nil {
		return fmt.Errorf("prediction time %q not in fmt %q: %w", s, predTimeFormat, err)
	}
	*t = Time(parsed)
	return nil
}

// In reads the wall clock of t as a time in loc.
func (t Time) In(loc *time.Location) time.Time {
	wall := time.Time(t)
	return time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), 0, loc)
}

type Height float64

func (h *Height) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("water height %q not string: %w", buf, err)
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("water height %q not a float: %w", s, err)
	}
	*h = Height(parsed)
	return nil
}

func (p Prediction) String() string {
	return fmt.Sprintf("{t: %s, v: %f}",
		time.Time(p.Time).Format(predTimeFormat),
		p.Height)
}
