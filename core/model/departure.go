package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skysift/skysift/core/timeofday"
)

// DepartureRecord is a raw row as it arrives from a source, before any
// normalization. DepTime carries the compact clock token exactly as the
// source encoded it.
type DepartureRecord struct {
	Carrier     string
	Flight      string
	Origin      string
	Destination string
	Date        string // calendar date, "2006-01-02"
	DepTime     string // compact HMM/HHMM token
	DelayMin    float64
	DistanceKM  float64
}

// Route returns an "ORG-DST" label for logging and tagging.
func (r DepartureRecord) Route() string {
	return fmt.Sprintf("%s-%s", r.Origin, r.Destination)
}

// NormalizedDeparture is a departure with a validated time of day and a
// composed timestamp. Values are immutable once built.
type NormalizedDeparture struct {
	ID          uuid.UUID
	Carrier     string
	Flight      string
	Origin      string
	Destination string
	TimeOfDay   timeofday.TimeOfDay
	DepartsAt   time.Time
	DelayMin    float64
	DistanceKM  float64
}

// NewNormalizedDeparture assigns a fresh ID and carries the record fields
// over next to the normalized time.
func NewNormalizedDeparture(rec DepartureRecord, tod timeofday.TimeOfDay, departsAt time.Time) NormalizedDeparture {
	return NormalizedDeparture{
		ID:          uuid.New(),
		Carrier:     rec.Carrier,
		Flight:      rec.Flight,
		Origin:      rec.Origin,
		Destination: rec.Destination,
		TimeOfDay:   tod,
		DepartsAt:   departsAt,
		DelayMin:    rec.DelayMin,
		DistanceKM:  rec.DistanceKM,
	}
}

// Route returns an "ORG-DST" label for logging and tagging.
func (d NormalizedDeparture) Route() string {
	return fmt.Sprintf("%s-%s", d.Origin, d.Destination)
}
