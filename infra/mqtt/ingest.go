// Package mqtt implements the live ingest source. Raw departure records
// arrive as JSON messages on a broker topic and are fed through the same
// normalization pipeline as batch files.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/skysift/skysift/core/model"
	"github.com/skysift/skysift/core/pipeline"
	"github.com/skysift/skysift/core/timestamp"
	"github.com/skysift/skysift/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker     string      `json:"broker"`
	ClientID   string      `json:"client_id"`
	Username   string      `json:"username"`
	Password   string      `json:"password"`
	Topic      string      `json:"topic"`
	QoS        byte        `json:"qos"`
	UseTLS     bool        `json:"use_tls"`
	ClientCert string      `json:"client_cert"`
	ClientKey  string      `json:"client_key"`
	CABundle   string      `json:"ca_bundle"`
	AuthMethod string      `json:"auth_method"`
	LWTTopic   string      `json:"lwt_topic"`
	LWTPayload string      `json:"lwt_payload"`
	LWTQoS     byte        `json:"lwt_qos"`
	LWTRetain  bool        `json:"lwt_retain"`
	TLSConfig  *tls.Config `json:"-"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "skysift/departures"
	}
	if c.ClientID == "" {
		c.ClientID = "skysift-ingest"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

// Message is the wire format of a raw departure record.
type Message struct {
	Carrier    string  `json:"carrier"`
	Flight     string  `json:"flight"`
	Origin     string  `json:"origin"`
	Dest       string  `json:"dest"`
	Date       string  `json:"date"`
	DepTime    string  `json:"dep_time"`
	DelayMin   float64 `json:"dep_delay"`
	DistanceKM float64 `json:"distance"`
}

// pahoClient is the narrow slice of the Paho API the ingestor uses. Tests
// substitute a mock through newMQTTClient.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Ingestor subscribes to the departures topic and pushes every message
// through the normalizer.
type Ingestor struct {
	cli      pahoClient
	topic    string
	qos      byte
	norm     *pipeline.Normalizer
	fallback timestamp.Date
	log      logger.Logger
}

// NewIngestor connects to the broker and subscribes to the configured topic.
// fallback supplies the calendar date for messages without one.
func NewIngestor(cfg Config, norm *pipeline.Normalizer, fallback timestamp.Date) (*Ingestor, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt-ingest")
	ing := &Ingestor{
		topic:    cfg.Topic,
		qos:      cfg.QoS,
		norm:     norm,
		fallback: fallback,
		log:      log,
	}

	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if token := c.Subscribe(ing.topic, ing.qos, ing.onMessage); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	ing.cli = c
	return ing, nil
}

func (i *Ingestor) onMessage(_ paho.Client, msg paho.Message) {
	ingestID := uuid.NewString()
	var m Message
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		i.log.Errorf("ingest %s: decode: %v", ingestID, err)
		return
	}
	rec := model.DepartureRecord{
		Carrier:     m.Carrier,
		Flight:      m.Flight,
		Origin:      m.Origin,
		Destination: m.Dest,
		Date:        m.Date,
		DepTime:     m.DepTime,
		DelayMin:    m.DelayMin,
		DistanceKM:  m.DistanceKM,
	}
	dep, err := i.norm.Process("mqtt", 0, rec, i.fallback)
	if err != nil {
		// Already logged and published by the normalizer.
		return
	}
	i.log.Debugw("ingested departure", map[string]any{
		"ingest_id": ingestID,
		"id":        dep.ID.String(),
		"route":     dep.Route(),
		"departs":   dep.DepartsAt,
	})
}

// Close gracefully disconnects from the broker.
func (i *Ingestor) Close() {
	if i.cli != nil && i.cli.IsConnected() {
		i.cli.Disconnect(250)
	}
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.AuthMethod == "username_password" || cfg.AuthMethod == "both" || cfg.AuthMethod == "" {
		if cfg.Username != "" {
			opts.SetUsername(cfg.Username)
		}
		if cfg.Password != "" {
			opts.SetPassword(cfg.Password)
		}
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.LWTQoS, cfg.LWTRetain)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}
	return cfg, nil
}
