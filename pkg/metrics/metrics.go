package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "oceantrends"

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: subsystem,
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	fetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "fetch_latency",
			Subsystem: subsystem,
			Help:      "Upstream data source fetch latencies in seconds, per attempt.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"source", "outcome"},
	)

	alignedRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:      "aligned_rows",
			Subsystem: subsystem,
			Help:      "Rows in the most recently aligned table.",
		},
	)

	spikesDetected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:      "wave_spikes",
			Subsystem: subsystem,
			Help:      "Wave height spikes found in the most recently aligned table.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		fetchLatency,
		alignedRows,
		spikesDetected,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveFetch records one attempt against an upstream source. Outcome is a
// short label such as "ok", "error" or an HTTP status code.
func ObserveFetch(source, outcome string, latency time.Duration) {
	fetchLatency.With(prometheus.Labels{
		"source":  source,
		"outcome": outcome,
	}).Observe(latency.Seconds())
}

// ObserveAlignment records the size of an aligned table and its spikes.
func ObserveAlignment(rows, spikes int) {
	alignedRows.Set(float64(rows))
	spikesDetected.Set(float64(spikes))
}

func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, strconv.Itoa(rec.code), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}
