package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request targets used as label values.
const (
	TargetWeather     = "weather"
	TargetGeolocation = "geolocation"
)

// Request outcomes used as label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type Metrics struct {
	Requests       *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "nimbus_requests_total",
			Help: "Total number of outbound requests by target and outcome.",
		}, []string{"target", "outcome"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nimbus_request_duration_seconds",
			Help:    "Duration of outbound requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"target"}),
	}
}

// Observe records one request against target. A nil receiver is a no-op.
func (m *Metrics) Observe(target string, seconds float64, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	m.Requests.WithLabelValues(target, outcome).Inc()
	m.RequestSeconds.WithLabelValues(target).Observe(seconds)
}

// WriteTextfile writes everything gathered by reg to path in the text exposition
// format, for the node_exporter textfile collector.
func WriteTextfile(path string, reg prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return nil
}
