// Package mqtt subscribes to handshake batches published by collectors on an MQTT broker.
package mqtt

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/wire"
)

const (
	// DefaultTopic receives batches from every collector.
	DefaultTopic = "proxitrace/handshakes/+"

	connectTimeout = 30 * time.Second

	subscribeTimeout          = 10 * time.Second
	subscribeRetryInterval    = 2 * time.Second
	maxSubscribeRetryInterval = time.Minute
)

var errSubscribeTimeout = errors.New("subscribe timeout")

// BatchHandler consumes one decoded batch. source identifies the publishing topic.
type BatchHandler func(ctx context.Context, source string, handshakes []domain.Handshake) error

// Config holds the broker connection settings.
type Config struct {
	Broker   string
	Username string
	Password string
	UseTLS   bool
	// ClientID is generated when empty. A configured id also keeps the broker session
	// across restarts so QoS 1/2 batches published while offline are delivered.
	ClientID string
	Topic    string
	QoS      byte
	// HandlerTimeout bounds the processing of one batch. Zero means no bound.
	HandlerTimeout time.Duration
	Logger         *slog.Logger
}

// Subscriber feeds batches received on the configured topic to a handler.
type Subscriber struct {
	cfg     Config
	handler BatchHandler
	client  paho.Client
	log     *slog.Logger

	mu        sync.RWMutex
	connected bool
	baseCtx   context.Context

	subscribeTimeout time.Duration
	retryInterval    time.Duration
}

// NewSubscriber creates a subscriber. Nothing connects until Start.
func NewSubscriber(cfg Config, handler BatchHandler) *Subscriber {
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.QoS > 2 {
		cfg.QoS = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Subscriber{
		cfg:     cfg,
		handler: handler,
		log:     cfg.Logger.WithGroup("mqtt"),
		baseCtx: context.Background(),

		subscribeTimeout: subscribeTimeout,
		retryInterval:    subscribeRetryInterval,
	}
}

// Start connects to the broker. Batches are handled with ctx as parent until Stop.
func (s *Subscriber) Start(ctx context.Context) error {
	if s.cfg.Broker == "" {
		return errors.New("broker URL is required")
	}
	if s.handler == nil {
		return errors.New("batch handler is required")
	}

	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	s.client = paho.NewClient(s.clientOptions())
	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return errors.New("connection timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connecting to broker: %w", err)
	}
	return nil
}

// clientOptions builds the paho options. Handlers block on storage, so messages are
// delivered unordered on their own goroutines.
func (s *Subscriber) clientOptions() *paho.ClientOptions {
	clientID := s.cfg.ClientID
	if clientID == "" {
		clientID = "proxitrace-" + randomString(12)
	}

	opts := paho.NewClientOptions().
		AddBroker(s.cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetMaxReconnectInterval(2 * time.Minute).
		SetKeepAlive(60 * time.Second).
		SetPingTimeout(10 * time.Second).
		SetCleanSession(s.cfg.ClientID == "").
		SetOrderMatters(false).
		SetOnConnectHandler(s.onConnected).
		SetConnectionLostHandler(s.onConnectionLost)

	if s.cfg.Username != "" {
		opts.SetUsername(s.cfg.Username)
	}
	if s.cfg.Password != "" {
		opts.SetPassword(s.cfg.Password)
	}
	if s.cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	return opts
}

// Stop disconnects from the broker.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		s.client.Disconnect(1000)
	}
	s.connected = false
}

// IsConnected reports whether the broker session is up.
func (s *Subscriber) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected && s.client != nil && s.client.IsConnected()
}

// onConnected subscribes until the broker acknowledges, the connection drops (the next
// reconnect calls it again) or the base context ends.
func (s *Subscriber) onConnected(client paho.Client) {
	s.mu.RLock()
	ctx := s.baseCtx
	s.mu.RUnlock()

	delay := s.retryInterval
	for attempt := 1; ; attempt++ {
		err := s.subscribe(client)
		if err == nil {
			break
		}
		s.log.Error("subscribe failed", "topic", s.cfg.Topic, "attempt", attempt, "retry_in", delay, "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		if !client.IsConnectionOpen() {
			return
		}
		delay = min(delay*2, maxSubscribeRetryInterval)
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()
	s.log.Info("connected to MQTT broker", "broker", s.cfg.Broker, "topic", s.cfg.Topic)
}

func (s *Subscriber) subscribe(client paho.Client) error {
	token := client.Subscribe(s.cfg.Topic, s.cfg.QoS, func(_ paho.Client, msg paho.Message) {
		s.handleMessage(msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(s.subscribeTimeout) {
		return errSubscribeTimeout
	}
	return token.Error()
}

func (s *Subscriber) onConnectionLost(_ paho.Client, err error) {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()

	s.log.Error("MQTT connection lost", "error", err)
}

// handleMessage decodes and dispatches one payload. Malformed payloads are dropped since
// redelivery cannot fix them.
func (s *Subscriber) handleMessage(topic string, payload []byte) {
	handshakes, err := wire.DecodeBatch(bytes.NewReader(payload))
	if err != nil {
		s.log.Warn("dropping malformed batch", "topic", topic, "error", err)
		return
	}

	s.mu.RLock()
	ctx := s.baseCtx
	s.mu.RUnlock()
	if s.cfg.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.HandlerTimeout)
		defer cancel()
	}

	if err := s.handler(ctx, "mqtt:"+topic, handshakes); err != nil {
		s.log.ErrorContext(ctx, "batch handling failed", "topic", topic, "handshakes", len(handshakes), "error", err)
	}
}

func randomString(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
