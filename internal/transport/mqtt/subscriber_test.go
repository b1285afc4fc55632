package mqtt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
)

func TestNewSubscriberDefaults(t *testing.T) {
	s := NewSubscriber(Config{Broker: "tcp://localhost:1883", QoS: 7}, nil)
	if s.cfg.Topic != DefaultTopic {
		t.Fatalf("expected default topic, got %q", s.cfg.Topic)
	}
	if s.cfg.QoS != 1 {
		t.Fatalf("expected clamped QoS 1, got %d", s.cfg.QoS)
	}
	if s.IsConnected() {
		t.Fatal("new subscriber must not report connected")
	}
}

func TestStartValidatesConfig(t *testing.T) {
	handler := func(context.Context, string, []domain.Handshake) error { return nil }

	if err := NewSubscriber(Config{}, handler).Start(context.Background()); err == nil {
		t.Fatal("expected error for missing broker")
	}
	if err := NewSubscriber(Config{Broker: "tcp://localhost:1883"}, nil).Start(context.Background()); err == nil {
		t.Fatal("expected error for missing handler")
	}
}

func TestHandleMessageDispatchesDecodedBatch(t *testing.T) {
	var (
		gotSource string
		gotBatch  []domain.Handshake
	)
	s := NewSubscriber(Config{Broker: "tcp://localhost:1883"}, func(_ context.Context, source string, handshakes []domain.Handshake) error {
		gotSource = source
		gotBatch = handshakes
		return nil
	})

	s.handleMessage("proxitrace/handshakes/gw-1", []byte(`{"handshakes":[{"ephId":"YQ==","timestamp":"2026-05-01T08:00:00Z","rssi":-50}]}`))

	if gotSource != "mqtt:proxitrace/handshakes/gw-1" {
		t.Fatalf("unexpected source: %q", gotSource)
	}
	if len(gotBatch) != 1 || string(gotBatch[0].EphID) != "a" {
		t.Fatalf("unexpected batch: %+v", gotBatch)
	}
}

func TestHandleMessageDropsMalformedPayload(t *testing.T) {
	called := false
	s := NewSubscriber(Config{Broker: "tcp://localhost:1883"}, func(context.Context, string, []domain.Handshake) error {
		called = true
		return errors.New("unexpected call")
	})

	s.handleMessage("proxitrace/handshakes/gw-1", []byte("not json"))
	if called {
		t.Fatal("handler must not run for malformed payloads")
	}
}

func TestClientOptionsDeliverUnordered(t *testing.T) {
	s := NewSubscriber(Config{Broker: "tcp://localhost:1883"}, nil)

	opts := s.clientOptions()
	if opts.Order {
		t.Fatal("blocking handlers require unordered delivery")
	}
	if !opts.CleanSession {
		t.Fatal("generated client ids must use a clean session")
	}
	if opts.ClientID == "" {
		t.Fatal("expected generated client id")
	}
}

func TestClientOptionsKeepSessionForConfiguredClientID(t *testing.T) {
	s := NewSubscriber(Config{Broker: "tcp://localhost:1883", ClientID: "collector-sink"}, nil)

	opts := s.clientOptions()
	if opts.CleanSession {
		t.Fatal("configured client id should keep its broker session")
	}
	if opts.ClientID != "collector-sink" {
		t.Fatalf("unexpected client id %q", opts.ClientID)
	}
}

func TestOnConnectedRetriesSubscribeAfterTimeout(t *testing.T) {
	s := NewSubscriber(Config{Broker: "tcp://localhost:1883"}, nil)
	s.subscribeTimeout = time.Millisecond
	s.retryInterval = time.Millisecond

	client := &fakeClient{open: true, tokens: []*fakeToken{{timeout: true}, {}}}
	s.onConnected(client)

	if got := client.subscribeCalls(); got != 2 {
		t.Fatalf("expected subscribe retry, got %d calls", got)
	}
	if !s.connected {
		t.Fatal("expected connected after successful subscribe")
	}
}

func TestOnConnectedStopsRetryingWhenConnectionCloses(t *testing.T) {
	s := NewSubscriber(Config{Broker: "tcp://localhost:1883"}, nil)
	s.subscribeTimeout = time.Millisecond
	s.retryInterval = time.Millisecond

	client := &fakeClient{open: false, tokens: []*fakeToken{{err: errors.New("not authorized")}}}
	s.onConnected(client)

	if got := client.subscribeCalls(); got != 1 {
		t.Fatalf("expected a single attempt on a closed connection, got %d", got)
	}
	if s.connected {
		t.Fatal("failed subscribe must not report connected")
	}
}

type fakeClient struct {
	paho.Client

	mu     sync.Mutex
	open   bool
	tokens []*fakeToken
	calls  int
}

func (c *fakeClient) Subscribe(string, byte, paho.MessageHandler) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	token := c.tokens[min(c.calls, len(c.tokens)-1)]
	c.calls++
	return token
}

func (c *fakeClient) IsConnectionOpen() bool {
	return c.open
}

func (c *fakeClient) subscribeCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type fakeToken struct {
	timeout bool
	err     error
}

func (t *fakeToken) Wait() bool { return !t.timeout }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.timeout }
func (t *fakeToken) Done() <-chan struct{} { return make(chan struct{}) }
func (t *fakeToken) Error() error { return t.err }
