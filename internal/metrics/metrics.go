package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var fetchDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Metrics holds the Prometheus instruments for the fetch lifecycle.
type Metrics struct {
	FetchesTotal    *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	SupersededTotal *prometheus.CounterVec
	ClearsTotal     prometheus.Counter
}

// InitMetrics creates and registers all instruments on reg.
func InitMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fetchview_fetches_total",
			Help: "Completed fetches by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fetchview_fetch_duration_seconds",
			Help:    "Time from dispatch to validated outcome.",
			Buckets: fetchDurationBuckets,
		}, []string{"endpoint"}),
		SupersededTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fetchview_superseded_total",
			Help: "Responses discarded because a newer request was issued.",
		}, []string{"endpoint"}),
		ClearsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fetchview_clears_total",
			Help: "Number of clear requests.",
		}),
	}

	reg.MustRegister(m.FetchesTotal, m.FetchDuration, m.SupersededTotal, m.ClearsTotal)
	return m
}

// RecordFetch counts a presented outcome and its latency.
func (m *Metrics) RecordFetch(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(endpoint, outcome).Inc()
	m.FetchDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordSuperseded counts a discarded stale response.
func (m *Metrics) RecordSuperseded(endpoint string) {
	if m == nil {
		return
	}
	m.SupersededTotal.WithLabelValues(endpoint).Inc()
}

// RecordClear counts a clear request.
func (m *Metrics) RecordClear() {
	if m == nil {
		return
	}
	m.ClearsTotal.Inc()
}
