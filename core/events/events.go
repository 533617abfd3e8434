package events

import "github.com/skysift/skysift/core/model"

// DepartureNormalized is published for each record that clears validation
// and normalization.
type DepartureNormalized struct {
	Source    string
	Departure model.NormalizedDeparture
}

// RecordRejected is published for each record the pipeline refused. Line is
// the 1-based row number for batch sources and zero for live feeds.
type RecordRejected struct {
	Source string
	Line   int
	Token  string
	Err    error
}
