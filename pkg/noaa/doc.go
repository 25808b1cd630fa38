// Package noaa implements queries to the NOAA CO-OPS API to retrieve hourly
// tide predictions. Tide data is requested as a time series per station (see
// PredictionQuery). A successful query returns heights in meters above MLLW at
// station local time.
package noaa
