package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/skysift/skysift/core/metrics"
)

// PromSink records normalization outcomes in Prometheus metrics.
type PromSink struct {
	outcomes *prometheus.CounterVec
	delay    *prometheus.HistogramVec
}

// NewPromSink registers pipeline metrics on the default Prometheus registerer.
// The metrics server is started separately on cfg.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer. A nil
// registerer defaults to the global one; collectors that are already
// registered are reused.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "normalize_records_total",
		Help: "Total number of records processed, by outcome",
	}, []string{"source", "outcome"})
	delay := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "departure_delay_minutes",
		Help:    "Departure delay of normalized records in minutes",
		Buckets: []float64{-15, 0, 5, 15, 30, 60, 120, 240},
	}, []string{"carrier"})

	if err := reg.Register(outcomes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			outcomes = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(delay); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			delay = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{outcomes: outcomes, delay: delay}, nil
}

// RecordNormalized counts the record and observes its delay.
func (s *PromSink) RecordNormalized(ev coremetrics.NormalizedEvent) error {
	s.outcomes.WithLabelValues(ev.Source, "normalized").Inc()
	s.delay.WithLabelValues(ev.Departure.Carrier).Observe(ev.Departure.DelayMin)
	return nil
}

// RecordRejected counts the record under its rejection kind.
func (s *PromSink) RecordRejected(ev coremetrics.RejectedEvent) error {
	s.outcomes.WithLabelValues(ev.Source, ev.Kind+"_error").Inc()
	return nil
}
