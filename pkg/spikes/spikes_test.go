package spikes

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/oceantrends/pkg/align"
)

var t0 = time.Date(2025, time.July, 29, 0, 0, 0, 0, time.UTC)

func table(heights ...float64) align.Table {
	result := make(align.Table, len(heights))
	for i, h := range heights {
		ts := t0.Add(time.Duration(i) * time.Hour)
		result[i] = align.Record{Time: ts, WaveHeight: h, WaveTime: ts}
	}
	return result
}

func ExampleDetect() {
	rows := table(1, 1, 1, 1, 1, 1, 1, 1, 1, 5)
	for _, r := range Detect(rows, DefaultK) {
		fmt.Printf("%s %.1f\n", r.Time.Format("15:04"), r.WaveHeight)
	}
	// Output:
	// 09:00 5.0
}

func TestDetectConstant(t *testing.T) {
	if got := Detect(table(0.75, 0.75, 0.75, 0.75), DefaultK); len(got) != 0 {
		t.Errorf("constant series gave spikes: %v", got)
	}
	// With k=0 the threshold is the mean itself and > excludes it.
	if got := Detect(table(0.75, 0.75, 0.75), 0); len(got) != 0 {
		t.Errorf("constant series gave spikes at k=0: %v", got)
	}
}

func TestDetectTooFewRows(t *testing.T) {
	if got := Detect(table(), DefaultK); len(got) != 0 {
		t.Errorf("empty table gave spikes")
	}
	if got := Detect(table(3), DefaultK); len(got) != 0 {
		t.Errorf("single row gave spikes")
	}
}

func TestDetectKeepsOrder(t *testing.T) {
	rows := table(1, 9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 8)
	got := Detect(rows, 1.5)
	want := []time.Time{rows[1].Time, rows[19].Time}
	if diff := cmp.Diff(want, got.Times()); diff != "" {
		t.Errorf("wrong spikes (-want,+got):\n%s", diff)
	}
}

func TestThresholdUsesSampleStdDev(t *testing.T) {
	// Sample variance of 1..4 is 5/3.
	limit, ok := Threshold(table(1, 2, 3, 4), 2)
	if !ok {
		t.Fatalf("threshold undefined")
	}
	want := 2.5 + 2*math.Sqrt(5.0/3.0)
	if math.Abs(limit-want) > 1e-12 {
		t.Errorf("got %f, want %f", limit, want)
	}
}
