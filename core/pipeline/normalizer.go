// Package pipeline runs raw departure records through token normalization
// and timestamp composition, publishing the outcome on the event bus. Both
// the CSV batch loader and the MQTT ingest feed records through here so the
// contract checks and observability are applied once.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skysift/skysift/core/events"
	corelogger "github.com/skysift/skysift/core/logger"
	"github.com/skysift/skysift/core/model"
	"github.com/skysift/skysift/core/timeofday"
	"github.com/skysift/skysift/core/timestamp"
	"github.com/skysift/skysift/internal/eventbus"
)

// Normalizer converts DepartureRecords into NormalizedDepartures. The zero
// value is not usable; construct with New.
type Normalizer struct {
	loc *time.Location
	log corelogger.Logger
	bus eventbus.EventBus
}

// New creates a Normalizer. A nil location means UTC; log and bus may be nil
// when no observability is wanted.
func New(loc *time.Location, log corelogger.Logger, bus eventbus.EventBus) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc, log: log, bus: bus}
}

// Process validates and normalizes one record. The date is taken from the
// record's Date field, or from fallback when the record carries none; a
// record with neither fails. source and line identify the record for events
// and logs.
func (n *Normalizer) Process(source string, line int, rec model.DepartureRecord, fallback timestamp.Date) (model.NormalizedDeparture, error) {
	date := fallback
	if ds := strings.TrimSpace(rec.Date); ds != "" {
		var err error
		date, err = timestamp.ParseDate(ds)
		if err != nil {
			return n.reject(source, line, rec.DepTime, err)
		}
	}
	if date.IsZero() {
		return n.reject(source, line, rec.DepTime, fmt.Errorf("record carries no date and no fallback date is set"))
	}

	tod, err := timeofday.Normalize(strings.TrimSpace(rec.DepTime))
	if err != nil {
		return n.reject(source, line, rec.DepTime, err)
	}
	at, err := timestamp.Compose(date, tod, n.loc)
	if err != nil {
		return n.reject(source, line, rec.DepTime, err)
	}

	dep := model.NewNormalizedDeparture(rec, tod, at)
	if n.bus != nil {
		n.bus.Publish(events.DepartureNormalized{Source: source, Departure: dep})
	}
	return dep, nil
}

func (n *Normalizer) reject(source string, line int, token string, err error) (model.NormalizedDeparture, error) {
	if n.log != nil {
		n.log.Warnf("%s line %d: reject token %q: %v", source, line, token, err)
	}
	if n.bus != nil {
		n.bus.Publish(events.RecordRejected{Source: source, Line: line, Token: token, Err: err})
	}
	return model.NormalizedDeparture{}, err
}

// RejectKind classifies a normalization error for metric labels. It returns
// "format", "range" or "other".
func RejectKind(err error) string {
	var fe timeofday.FormatError
	if errors.As(err, &fe) {
		return "format"
	}
	var re timeofday.RangeError
	if errors.As(err, &re) {
		return "range"
	}
	return "other"
}
