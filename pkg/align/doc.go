// Package align puts three differently sampled series on one timeline: hourly
// tide predictions, irregular buoy wave reports and daily temperatures. The
// tide timestamps drive the result. Each gets the nearest wave report within
// a tolerance and a temperature interpolated between the bracketing days.
// Rows missing either are dropped, and Validate rejects an empty result.
package align
