package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"donorly/internal/infra"
)

// NATSPublisher publishes events on a core NATS connection.
type NATSPublisher struct {
	conn   *nats.Conn
	logger infra.Logger
}

// Connect dials the NATS server at url. The connection reconnects on its own;
// disconnects are logged.
func Connect(url, name string, logger infra.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return conn, nil
}

// NewNATSPublisher wraps an established connection.
func NewNATSPublisher(conn *nats.Conn, logger infra.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, logger: logger}
}

// Publish encodes payload as JSON and publishes it on subject.
func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(payload)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.logger.Debug().Str("subject", subject).Int("bytes", len(data)).Msg("event published")
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

var _ Publisher = (*NATSPublisher)(nil)

// Handler processes one message received by a Subscriber.
type Handler func(ctx context.Context, msg *nats.Msg) error

// Subscriber dispatches messages of one subject to a handler with bounded
// concurrency.
type Subscriber struct {
	sub       *nats.Subscription
	subject   string
	handler   Handler
	timeout   time.Duration
	semaphore chan struct{}
	logger    infra.Logger

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// Subscribe starts delivering subject to handler. At most maxConcurrent
// handlers run at once; each gets its own timeout.
func Subscribe(conn *nats.Conn, subject string, handler Handler, maxConcurrent int, timeout time.Duration, logger infra.Logger) (*Subscriber, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &Subscriber{
		subject:   subject,
		handler:   handler,
		timeout:   timeout,
		semaphore: make(chan struct{}, maxConcurrent),
		logger:    logger,
	}
	sub, err := conn.Subscribe(subject, s.dispatch)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.sub = sub
	logger.Info().Str("subject", subject).Int("max_concurrent", maxConcurrent).Msg("subscriber started")
	return s, nil
}

// dispatch runs handler for msg unless the subscriber is stopping. wg.Add
// only happens under mu with stopped unset.
func (s *Subscriber) dispatch(msg *nats.Msg) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.logger.Debug().Str("subject", msg.Subject).Msg("subscriber stopping, message dropped")
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.semaphore <- struct{}{}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().Interface("panic", r).Str("subject", msg.Subject).Msg("event handler panicked")
			}
			<-s.semaphore
			s.wg.Done()
		}()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.handler(ctx, msg); err != nil {
			s.logger.Error().Err(err).Str("subject", msg.Subject).Msg("event handler failed")
		}
	}()
}

// Stop unsubscribes and waits for in-flight handlers.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			s.logger.Warn().Err(err).Str("subject", s.subject).Msg("unsubscribe failed")
		}
	}
	s.wg.Wait()
	s.logger.Info().Str("subject", s.subject).Msg("subscriber stopped")
}
