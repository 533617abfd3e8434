package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/skysift/skysift/core/metrics"
	"github.com/skysift/skysift/core/timestamp"
	"github.com/skysift/skysift/dataset"
	"github.com/skysift/skysift/infra/mqtt"
)

// IngestConfig wraps the MQTT source settings.
type IngestConfig struct {
	Enabled bool        `json:"enabled"`
	MQTT    mqtt.Config `json:"mqtt"`
	// Date is the fallback calendar date ("2006-01-02") for live messages
	// that carry none.
	Date string `json:"date"`
}

// Validate checks the ingest section.
func (c IngestConfig) Validate() error {
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	if c.Date != "" {
		if _, err := timestamp.ParseDate(c.Date); err != nil {
			return err
		}
	}
	return nil
}

type Config struct {
	Dataset dataset.Options    `json:"dataset"`
	Ingest  IngestConfig       `json:"ingest"`
	Metrics coremetrics.Config `json:"metrics"`
	Logging LoggingConfig      `json:"logging"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Dataset.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Logging.SetDefaults()
	// The dataset section is only binding when a batch file is configured;
	// the analyze/export commands validate their own flag-supplied options.
	if cfg.Dataset.Path != "" {
		if err := cfg.Dataset.Validate(); err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
	}
	if cfg.Ingest.Enabled {
		cfg.Ingest.MQTT.SetDefaults()
		if err := cfg.Ingest.Validate(); err != nil {
			return nil, fmt.Errorf("ingest: %w", err)
		}
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
