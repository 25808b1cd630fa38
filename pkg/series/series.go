// Package series holds the canonical two-column time series that every
// source adapter produces: a timestamp and a measurement in a fixed unit.
package series

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Kind distinguishes the three series variants by what they measure.
type Kind int

const (
	Tide Kind = iota
	Wave
	Temperature
)

func (k Kind) String() string {
	switch k {
	case Tide:
		return "tide"
	case Wave:
		return "wave"
	case Temperature:
		return "temperature"
	default:
		return "invalid"
	}
}

// Unit is the fixed unit of a Kind's values.
func (k Kind) Unit() string {
	switch k {
	case Tide, Wave:
		return "m"
	case Temperature:
		return "°C"
	default:
		return ""
	}
}

// Point is a single timestamped measurement.
type Point struct {
	Time  time.Time
	Value float64
}

func (p Point) String() string {
	return fmt.Sprintf("{t: %s, v: %.3f}", p.Time.Format(time.RFC3339), p.Value)
}

// Series is an ordered run of Points of one Kind. Points are non-decreasing
// by time.
type Series struct {
	Kind   Kind
	Points []Point
}

// New builds a Series from points in any order. The input slice is copied and
// stably sorted by time. Non-finite values are rejected; adapters are expected
// to drop missing readings before they get here.
func New(kind Kind, points []Point) (Series, error) {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	for _, p := range sorted {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return Series{}, fmt.Errorf("%s value at %s is not finite", kind, p.Time.Format(time.RFC3339))
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return Series{Kind: kind, Points: sorted}, nil
}

// Empty returns a Series of the given kind with no points.
func Empty(kind Kind) Series {
	return Series{Kind: kind}
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Points)
}

// Times returns the timestamps of the series in order.
func (s Series) Times() []time.Time {
	result := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		result[i] = p.Time
	}
	return result
}

// Values returns the values of the series in order.
func (s Series) Values() []float64 {
	result := make([]float64, len(s.Points))
	for i, p := range s.Points {
		result[i] = p.Value
	}
	return result
}

// Span returns the first and last timestamps. ok is false for an empty series.
func (s Series) Span() (first, last time.Time, ok bool) {
	if len(s.Points) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.Points[0].Time, s.Points[len(s.Points)-1].Time, true
}

// Sorted reports whether the points are non-decreasing by time.
func (s Series) Sorted() bool {
	return sort.SliceIsSorted(s.Points, func(i, j int) bool {
		return s.Points[i].Time.Before(s.Points[j].Time)
	})
}
