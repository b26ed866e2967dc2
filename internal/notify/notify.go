// Package notify publishes job summaries to an MQTT broker.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/hupe1980/spatialgo/codec"
)

// ErrNotConnected is returned when publishing without a broker connection.
var ErrNotConnected = errors.New("notify: mqtt client not connected")

// Client is the subset of mqtt.Client used by Publisher.
type Client interface {
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Config describes the broker connection.
type Config struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	// Topic defaults to "spatialgo/jobs".
	Topic  string `yaml:"topic,omitempty"`
	QoS    byte   `yaml:"qos,omitempty"`
	Retain bool   `yaml:"retain,omitempty"`
}

const (
	defaultTopic    = "spatialgo/jobs"
	defaultClientID = "spatialgo"
	connectTimeout  = 10 * time.Second
	publishTimeout  = 2 * time.Second
)

// Summary is the message published after a job finishes.
type Summary struct {
	Operation  string `json:"operation"`
	Input      string `json:"input"`
	Output     string `json:"output"`
	Points     int    `json:"points"`
	Degenerate int    `json:"degenerate"`
	CacheHit   bool   `json:"cache_hit"`
	ElapsedMS  int64  `json:"elapsed_ms"`
	Error      string `json:"error,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// Publisher sends summaries to one topic.
type Publisher struct {
	client Client
	topic  string
	qos    byte
	retain bool
}

// NewPublisher wraps an already connected client.
func NewPublisher(client Client, cfg Config) *Publisher {
	topic := cfg.Topic
	if topic == "" {
		topic = defaultTopic
	}
	return &Publisher{
		client: client,
		topic:  topic,
		qos:    cfg.QoS,
		retain: cfg.Retain,
	}
}

// Dial connects to cfg.Broker and returns a publisher on it.
func Dial(cfg Config) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("notify: broker is required")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = defaultClientID
	}
	opts.SetClientID(clientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetConnectTimeout(connectTimeout)
	opts.SetAutoReconnect(false)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("notify: connecting to %s: timeout", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("notify: connecting to %s: %w", cfg.Broker, err)
	}

	return NewPublisher(client, cfg), nil
}

// Topic returns the topic summaries are published to.
func (p *Publisher) Topic() string { return p.topic }

// Publish sends s as JSON. A zero Timestamp is set to now.
func (p *Publisher) Publish(ctx context.Context, s Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.client == nil || !p.client.IsConnected() {
		return ErrNotConnected
	}
	if s.Timestamp == 0 {
		s.Timestamp = time.Now().Unix()
	}

	payload, err := codec.Default.Marshal(s)
	if err != nil {
		return fmt.Errorf("notify: marshaling summary: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, p.retain, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("notify: publishing to %s: timeout", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("notify: publishing to %s: %w", p.topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.client != nil {
		p.client.Disconnect(250)
	}
}
