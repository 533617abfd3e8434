package metrics

import coremetrics "github.com/skysift/skysift/core/metrics"

// MultiSink fans out pipeline events to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.NormalizationSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.NormalizationSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordNormalized forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordNormalized(ev coremetrics.NormalizedEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordNormalized(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRejected forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordRejected(ev coremetrics.RejectedEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRejected(ev); err != nil {
			return err
		}
	}
	return nil
}
