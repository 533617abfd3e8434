// Package dataset loads departure records from delimited batch files. The
// loader performs the boundary validation the permissive source environment
// does not: required columns must exist, numeric fields must parse, and each
// time token is checked before entering the normalizer.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	corelogger "github.com/skysift/skysift/core/logger"
	"github.com/skysift/skysift/core/model"
	"github.com/skysift/skysift/core/pipeline"
	"github.com/skysift/skysift/core/timestamp"
	"github.com/skysift/skysift/internal/eventbus"
)

// Row error policies.
const (
	OnErrorSkip  = "skip"
	OnErrorAbort = "abort"
)

// Options holds settings for batch loading.
type Options struct {
	// Path is the batch file location. Commands may override it with a flag.
	Path string `json:"path"`
	// TimeColumn names the column holding the compact HMM/HHMM token.
	TimeColumn string `json:"time_column"`
	// DateColumn names the per-row calendar date column, if any.
	DateColumn string `json:"date_column"`
	// Date is a fixed fallback date ("2006-01-02") applied to rows without
	// a date column value. Either DateColumn or Date must be set.
	Date string `json:"date"`
	// Timezone is an IANA zone name for composed timestamps. Empty means UTC.
	Timezone string `json:"timezone"`
	// OnError selects the row error policy: "skip" or "abort".
	OnError string `json:"on_error"`

	CarrierColumn  string `json:"carrier_column"`
	FlightColumn   string `json:"flight_column"`
	OriginColumn   string `json:"origin_column"`
	DestColumn     string `json:"dest_column"`
	DelayColumn    string `json:"delay_column"`
	DistanceColumn string `json:"distance_column"`

	Delimiter rune `json:"-"`
	// NoHeader marks files without a header row; columns then follow a fixed
	// positional layout (time first, date second).
	NoHeader bool `json:"no_header"`
}

// SetDefaults applies sane defaults.
func (o *Options) SetDefaults() {
	if o.TimeColumn == "" {
		o.TimeColumn = "dep_time"
	}
	if o.OnError == "" {
		o.OnError = OnErrorSkip
	}
	if o.CarrierColumn == "" {
		o.CarrierColumn = "carrier"
	}
	if o.FlightColumn == "" {
		o.FlightColumn = "flight"
	}
	if o.OriginColumn == "" {
		o.OriginColumn = "origin"
	}
	if o.DestColumn == "" {
		o.DestColumn = "dest"
	}
	if o.DelayColumn == "" {
		o.DelayColumn = "dep_delay"
	}
	if o.DistanceColumn == "" {
		o.DistanceColumn = "distance"
	}
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
}

// Validate checks mandatory fields.
func (o Options) Validate() error {
	if o.OnError != OnErrorSkip && o.OnError != OnErrorAbort {
		return fmt.Errorf("unknown on_error policy %q", o.OnError)
	}
	if o.DateColumn == "" && o.Date == "" {
		return fmt.Errorf("either date_column or a fixed date is required")
	}
	if o.Date != "" {
		if _, err := timestamp.ParseDate(o.Date); err != nil {
			return err
		}
	}
	if o.Timezone != "" {
		if _, err := time.LoadLocation(o.Timezone); err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
	}
	return nil
}

// Result is the outcome of loading one batch.
type Result struct {
	Departures []model.NormalizedDeparture
	Rejected   int
}

// Loader reads batch files and feeds rows through the normalizer.
type Loader struct {
	opts     Options
	fallback timestamp.Date
	norm     *pipeline.Normalizer
	log      corelogger.Logger
}

// NewLoader validates the options and builds a Loader. log and bus may be nil.
func NewLoader(opts Options, log corelogger.Logger, bus eventbus.EventBus) (*Loader, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	loc := time.UTC
	if opts.Timezone != "" {
		var err error
		if loc, err = time.LoadLocation(opts.Timezone); err != nil {
			return nil, err
		}
	}
	var fallback timestamp.Date
	if opts.Date != "" {
		fallback, _ = timestamp.ParseDate(opts.Date)
	}
	return &Loader{
		opts:     opts,
		fallback: fallback,
		norm:     pipeline.New(loc, log, bus),
		log:      log,
	}, nil
}

// Load reads the file at path.
func (l *Loader) Load(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = f.Close() }()
	return l.LoadFromReader(f, path)
}

// LoadFromReader reads records from r. source labels the batch in events and
// logs.
func (l *Loader) LoadFromReader(r io.Reader, source string) (Result, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	cols, err := l.readHeader(reader)
	if err != nil {
		return Result{}, err
	}

	var res Result
	line := 0
	if !l.opts.NoHeader {
		line = 1 // header row
	}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("%s line %d: %w", source, line+1, err)
		}
		line++

		rec, err := cols.record(row)
		var dep model.NormalizedDeparture
		if err == nil {
			dep, err = l.norm.Process(source, line, rec, l.fallback)
		}
		if err != nil {
			res.Rejected++
			if l.opts.OnError == OnErrorAbort {
				return res, fmt.Errorf("%s line %d: %w", source, line, err)
			}
			continue
		}
		res.Departures = append(res.Departures, dep)
	}
	return res, nil
}

// columns maps option column names to row indices. -1 marks an absent
// optional column.
type columns struct {
	time, date, carrier, flight, origin, dest, delay, distance int
}

func (l *Loader) readHeader(reader *csv.Reader) (*columns, error) {
	cols := &columns{time: -1, date: -1, carrier: -1, flight: -1, origin: -1, dest: -1, delay: -1, distance: -1}
	if l.opts.NoHeader {
		// Fixed positional layout when no header is present.
		cols.time = 0
		cols.date = 1
		return cols, nil
	}
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		switch strings.TrimSpace(strings.Trim(h, `"`)) {
		case l.opts.TimeColumn:
			cols.time = i
		case l.opts.DateColumn:
			cols.date = i
		case l.opts.CarrierColumn:
			cols.carrier = i
		case l.opts.FlightColumn:
			cols.flight = i
		case l.opts.OriginColumn:
			cols.origin = i
		case l.opts.DestColumn:
			cols.dest = i
		case l.opts.DelayColumn:
			cols.delay = i
		case l.opts.DistanceColumn:
			cols.distance = i
		}
	}
	if cols.time == -1 {
		return nil, fmt.Errorf("time column %q not found in header", l.opts.TimeColumn)
	}
	if l.opts.DateColumn != "" && cols.date == -1 {
		return nil, fmt.Errorf("date column %q not found in header", l.opts.DateColumn)
	}
	return cols, nil
}

func (c *columns) record(row []string) (model.DepartureRecord, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	rec := model.DepartureRecord{
		Carrier:     field(c.carrier),
		Flight:      field(c.flight),
		Origin:      field(c.origin),
		Destination: field(c.dest),
		Date:        field(c.date),
		DepTime:     field(c.time),
	}
	if rec.DepTime == "" {
		return rec, fmt.Errorf("empty time token")
	}
	var err error
	if rec.DelayMin, err = numeric(field(c.delay)); err != nil {
		return rec, fmt.Errorf("delay column: %w", err)
	}
	if rec.DistanceKM, err = numeric(field(c.distance)); err != nil {
		return rec, fmt.Errorf("distance column: %w", err)
	}
	return rec, nil
}

func numeric(s string) (float64, error) {
	if s == "" || s == "NA" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
