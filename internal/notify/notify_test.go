package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/spatialgo/codec"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type message struct {
	topic   string
	qos     byte
	retain  bool
	payload []byte
}

type fakeClient struct {
	mu           sync.Mutex
	connected    bool
	publishErr   error
	messages     []message
	disconnected bool
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message{topic: topic, qos: qos, retain: retained, payload: payload.([]byte)})
	return &fakeToken{err: c.publishErr}
}

func (c *fakeClient) Disconnect(uint) { c.disconnected = true }

func TestPublish(t *testing.T) {
	client := &fakeClient{connected: true}
	p := NewPublisher(client, Config{QoS: 1, Retain: true})
	assert.Equal(t, "spatialgo/jobs", p.Topic())

	err := p.Publish(context.Background(), Summary{Operation: "filter", Points: 12, Timestamp: 42})
	require.NoError(t, err)

	require.Len(t, client.messages, 1)
	msg := client.messages[0]
	assert.Equal(t, "spatialgo/jobs", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.True(t, msg.retain)

	var got Summary
	require.NoError(t, codec.Default.Unmarshal(msg.payload, &got))
	assert.Equal(t, Summary{Operation: "filter", Points: 12, Timestamp: 42}, got)
}

func TestPublishSetsTimestamp(t *testing.T) {
	client := &fakeClient{connected: true}
	p := NewPublisher(client, Config{Topic: "jobs/done"})

	require.NoError(t, p.Publish(context.Background(), Summary{Operation: "score"}))

	var got Summary
	require.NoError(t, codec.Default.Unmarshal(client.messages[0].payload, &got))
	assert.Equal(t, "jobs/done", client.messages[0].topic)
	assert.Positive(t, got.Timestamp)
}

func TestPublishErrors(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		client  *fakeClient
		wantErr error
	}{
		{name: "not connected", ctx: context.Background(), client: &fakeClient{}, wantErr: ErrNotConnected},
		{name: "canceled", ctx: canceled, client: &fakeClient{connected: true}, wantErr: context.Canceled},
		{name: "broker error", ctx: context.Background(), client: &fakeClient{connected: true, publishErr: errBroker}, wantErr: errBroker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPublisher(tt.client, Config{})
			err := p.Publish(tt.ctx, Summary{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

var errBroker = errors.New("broker rejected")

func TestClose(t *testing.T) {
	client := &fakeClient{connected: true}
	NewPublisher(client, Config{}).Close()
	assert.True(t, client.disconnected)
}

func TestDialRequiresBroker(t *testing.T) {
	_, err := Dial(Config{})
	assert.ErrorContains(t, err, "broker is required")
}
