package metrics

import (
	"time"

	"github.com/skysift/skysift/core/model"
)

// NormalizedEvent represents a departure that cleared normalization.
type NormalizedEvent struct {
	Source    string
	Departure model.NormalizedDeparture
	Time      time.Time
}

// RejectedEvent represents a record the pipeline refused. Kind is either
// "format" or "range".
type RejectedEvent struct {
	Source string
	Token  string
	Kind   string
	Time   time.Time
}

// NormalizationSink records pipeline outcomes for observability purposes.
type NormalizationSink interface {
	RecordNormalized(ev NormalizedEvent) error
	RecordRejected(ev RejectedEvent) error
}

// NopSink implements NormalizationSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordNormalized(NormalizedEvent) error { return nil }
func (NopSink) RecordRejected(RejectedEvent) error     { return nil }
