// Package spikes flags wave heights that stand out from the rest of an
// aligned table.
package spikes

import (
	"math"

	"github.com/spencer-p/oceantrends/pkg/align"
)

// DefaultK is the default number of standard deviations above the mean a wave
// height must exceed.
const DefaultK = 2.0

// Detect returns the rows whose wave height is strictly greater than
// Threshold(table, k), in their original order. The result may be empty.
func Detect(table align.Table, k float64) align.Table {
	limit, ok := Threshold(table, k)
	if !ok {
		return align.Table{}
	}
	result := align.Table{}
	for _, r := range table {
		if r.WaveHeight > limit {
			result = append(result, r)
		}
	}
	return result
}

// Threshold is mean + k*stddev of the table's wave heights, using the sample
// standard deviation (n-1 denominator). ok is false for fewer than two rows,
// where the deviation is undefined.
func Threshold(table align.Table, k float64) (limit float64, ok bool) {
	if len(table) < 2 {
		return 0, false
	}
	heights := table.WaveHeights()
	m := Mean(heights)
	return m + k*StdDev(heights, m), true
}

// Mean is the arithmetic mean of values, or 0 when there are none.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the sample standard deviation of values around mean.
func StdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}
