package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	cyclesTotal   *prometheus.CounterVec
	cycleDuration *prometheus.HistogramVec
	viewState     *prometheus.GaugeVec
	errorsTotal   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_fetches_total",
				Help: "Total number of endpoint fetches by data source outcome",
			},
			[]string{"endpoint", "source"},
		),
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_fetch_duration_seconds",
				Help:    "Duration of upstream endpoint fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		cyclesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_refresh_cycles_total",
				Help: "Total number of completed refresh cycles by trigger",
			},
			[]string{"trigger"},
		),
		cycleDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_refresh_cycle_duration_seconds",
				Help:    "Duration of full refresh cycles in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"trigger"},
		),
		viewState: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockpulse_view_state",
				Help: "Current presentation state (1 for the active state, 0 otherwise)",
			},
			[]string{"state"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

var viewStates = []string{"loading", "ready", "degraded", "harderror"}

func (r *Recorder) RecordFetch(endpoint, source string, seconds float64) {
	r.fetchesTotal.WithLabelValues(endpoint, source).Inc()
	r.fetchLatency.WithLabelValues(endpoint).Observe(seconds)
}

func (r *Recorder) RecordCycle(trigger string, seconds float64) {
	r.cyclesTotal.WithLabelValues(trigger).Inc()
	r.cycleDuration.WithLabelValues(trigger).Observe(seconds)
}

func (r *Recorder) RecordViewState(state string) {
	for _, s := range viewStates {
		v := 0.0
		if s == state {
			v = 1.0
		}
		r.viewState.WithLabelValues(s).Set(v)
	}
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
