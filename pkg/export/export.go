// Package export writes normalized departures to interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/skysift/skysift/core/model"
)

// WriteJSON writes the departures to w in JSON format.
func WriteJSON(w io.Writer, deps []model.NormalizedDeparture) error {
	enc := json.NewEncoder(w)
	return enc.Encode(deps)
}

// WriteCSV writes the departures to w in CSV format with canonical headers.
func WriteCSV(w io.Writer, deps []model.NormalizedDeparture) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "carrier", "flight", "origin", "dest", "departs_at", "time_of_day", "dep_delay", "distance"}); err != nil {
		return err
	}
	for _, d := range deps {
		rec := []string{
			d.ID.String(),
			d.Carrier,
			d.Flight,
			d.Origin,
			d.Destination,
			d.DepartsAt.Format(time.RFC3339),
			d.TimeOfDay.String(),
			strconv.FormatFloat(d.DelayMin, 'f', -1, 64),
			strconv.FormatFloat(d.DistanceKM, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
