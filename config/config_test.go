package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/skysift/skysift/infra/logger"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `dataset:
  path: "flights.csv"
  time_column: "dep_time"
  date_column: "date"
  timezone: "UTC"
  on_error: "skip"
ingest:
  enabled: true
  date: "2022-01-01"
  mqtt:
    broker: "tcp://localhost:1883"
    client_id: "cli"
    username: "user"
    password: "pass"
    topic: "skysift/departures"
    use_tls: false
metrics:
  prometheus_enabled: true
  prometheus_addr: ":9100"
  influx_enabled: false
logging:
  level: "debug"
  format: "console"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"dataset.path", cfg.Dataset.Path, "flights.csv"},
		{"dataset.time_column", cfg.Dataset.TimeColumn, "dep_time"},
		{"dataset.date_column", cfg.Dataset.DateColumn, "date"},
		{"dataset.on_error", cfg.Dataset.OnError, "skip"},
		{"ingest.enabled", cfg.Ingest.Enabled, true},
		{"ingest.date", cfg.Ingest.Date, "2022-01-01"},
		{"broker", cfg.Ingest.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.Ingest.MQTT.ClientID, "cli"},
		{"username", cfg.Ingest.MQTT.Username, "user"},
		{"topic", cfg.Ingest.MQTT.Topic, "skysift/departures"},
		{"prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9100"},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.format", cfg.Logging.Format, "console"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logging: {}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults not applied: %+v", cfg.Logging)
	}
	if cfg.Metrics.PrometheusAddr != ":2112" {
		t.Errorf("metrics defaults not applied: %+v", cfg.Metrics)
	}
	if cfg.Dataset.TimeColumn != "dep_time" {
		t.Errorf("dataset defaults not applied: %+v", cfg.Dataset)
	}
}

func TestLoadRejectsBadIngest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "ingest:\n  enabled: true\n  date: \"2022-01-01\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for ingest without broker")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestLoggingConfigApply(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer logger.SetFormat("")

	LoggingConfig{Level: "warn", Format: "console"}.Apply()
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("global level not applied: %v", zerolog.GlobalLevel())
	}
}

func TestLoggingConfigValidate(t *testing.T) {
	bad := LoggingConfig{Level: "verbose", Format: "json"}
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for bad level")
	}
	bad = LoggingConfig{Level: "info", Format: "xml"}
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for bad format")
	}
	good := LoggingConfig{Level: "warn", Format: "console"}
	if err := good.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
