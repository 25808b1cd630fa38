package noaa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParsePrediction(t *testing.T) {
	table := []struct {
		input string
		want  Prediction
	}{{
		input: `{"t":"2020-10-20 02:00", "v":"1.244"}`,
		want: Prediction{
			Time:   Time(time.Date(2020, time.October, 20, 2, 0, 0, 0, time.UTC)),
			Height: 1.244,
		},
	}, {
		input: `{"t":"2019-09-21 06:00", "v":"-0.102"}`,
		want: Prediction{
			Time:   Time(time.Date(2019, time.September, 21, 6, 0, 0, 0, time.UTC)),
			Height: -0.102,
		},
	}}

	for _, test := range table {
		t.Run(test.input, func(t *testing.T) {
			var got Prediction

			dec := json.NewDecoder(bytes.NewBufferString(test.input))
			if err := dec.Decode(&got); err != nil {
				t.Errorf("unexpected error: %+v", err)
			}

			gotstr := fmt.Sprintf("%s", got)
			wantstr := fmt.Sprintf("%s", test.want)
			if diff := cmp.Diff(gotstr, wantstr); diff != "" {
				t.Errorf("incorrect parse (-got,+want): %s", diff)
			}
		})
	}
}

func TestTimeIn(t *testing.T) {
	loc := time.FixedZone("PDT", -7*60*60)
	wall := Time(time.Date(2025, time.July, 29, 13, 0, 0, 0, time.UTC))
	got := wall.In(loc)
	if got.Hour() != 13 || got.Location() != loc {
		t.Errorf("got %s, want 13:00 PDT", got)
	}
	if want := time.Date(2025, time.July, 29, 20, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got instant %s, want %s", got.UTC(), want)
	}
}

func TestParseBadTime(t *testing.T) {
	var p Prediction
	if err := json.Unmarshal([]byte(`{"t":"July 29","v":"1.0"}`), &p); err == nil {
		t.Errorf("expected error for malformed time")
	}
}
