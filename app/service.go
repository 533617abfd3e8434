// Package app wires the configured sources, the normalization pipeline and
// the metric sinks into a long-running service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/skysift/skysift/config"
	coremetrics "github.com/skysift/skysift/core/metrics"
	"github.com/skysift/skysift/core/pipeline"
	"github.com/skysift/skysift/core/stats"
	"github.com/skysift/skysift/core/timestamp"
	"github.com/skysift/skysift/dataset"
	"github.com/skysift/skysift/infra/logger"
	"github.com/skysift/skysift/infra/metrics"
	"github.com/skysift/skysift/infra/mqtt"
	"github.com/skysift/skysift/internal/eventbus"
)

// Service orchestrates the ingest sources and observability sinks.
type Service struct {
	cfg    *config.Config
	bus    *eventbus.Bus
	sink   coremetrics.NormalizationSink
	influx *metrics.InfluxSink
	ingest *mqtt.Ingestor
	log    logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	cfg.Logging.Apply()
	logg := logger.New("service")

	var sinks []coremetrics.NormalizationSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	var influx *metrics.InfluxSink
	if cfg.Metrics.InfluxEnabled {
		is := metrics.NewInfluxSinkWithFallback(cfg.Metrics)
		if s, ok := is.(*metrics.InfluxSink); ok {
			influx = s
		}
		sinks = append(sinks, is)
	}
	var sink coremetrics.NormalizationSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	return &Service{
		cfg:    cfg,
		bus:    eventbus.New(),
		sink:   sink,
		influx: influx,
		log:    logg,
	}, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus, s.sink)

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	if s.cfg.Dataset.Path != "" {
		if err := s.runBatch(); err != nil {
			return err
		}
	}

	if s.cfg.Ingest.Enabled {
		var fallback timestamp.Date
		if s.cfg.Ingest.Date != "" {
			var err error
			if fallback, err = timestamp.ParseDate(s.cfg.Ingest.Date); err != nil {
				return err
			}
		}
		loc := time.UTC
		if s.cfg.Dataset.Timezone != "" {
			var err error
			if loc, err = time.LoadLocation(s.cfg.Dataset.Timezone); err != nil {
				return err
			}
		}
		norm := pipeline.New(loc, logger.New("pipeline"), s.bus)
		ing, err := mqtt.NewIngestor(s.cfg.Ingest.MQTT, norm, fallback)
		if err != nil {
			return fmt.Errorf("mqtt ingest: %w", err)
		}
		s.ingest = ing
	}

	<-ctx.Done()
	return nil
}

func (s *Service) runBatch() error {
	loader, err := dataset.NewLoader(s.cfg.Dataset, logger.New("dataset"), s.bus)
	if err != nil {
		return fmt.Errorf("dataset loader: %w", err)
	}
	res, err := loader.Load(s.cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.cfg.Dataset.Path, err)
	}
	sum := stats.Summarize(res.Departures)
	s.log.Infof("batch %s: %d normalized, %d rejected, mean delay %.1f min",
		s.cfg.Dataset.Path, sum.Count, res.Rejected, sum.MeanDelay)
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.ingest != nil {
		s.ingest.Close()
	}
	if s.influx != nil {
		s.influx.Close()
	}
	s.bus.Close()
	return nil
}
