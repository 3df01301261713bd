// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package eventbus publishes domain events to Kafka.

Publishing is fire-and-forget: events are JSON encoded, queued in memory and
written by one background loop. A full queue drops the event; broker errors
are logged and never reach the caller.

Usage:

	publisher, err := eventbus.NewPublisher(eventbus.Config{Brokers: brokers, Topic: topic}, logger)
	publisher.Start(ctx)
	defer publisher.Stop(shutdownCtx)

With no brokers configured the publisher is disabled and every call is a no-op.
*/
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	queueSize    = 128
	writeTimeout = 5 * time.Second
)

var errNilLogger = errors.New("eventbus: publisher requires a logger")

// Config holds the Kafka coordinates for one topic.
type Config struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether any broker is configured.
func (c Config) Enabled() bool {
	return len(c.Brokers) > 0
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher asynchronously writes events to one Kafka topic.
type Publisher struct {
	cfg     Config
	logger  *slog.Logger
	writer  messageWriter
	enabled bool

	queue     chan kafka.Message
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPublisher constructs a [Publisher]; it is disabled when cfg has no brokers.
func NewPublisher(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		return nil, errNilLogger
	}
	if !cfg.Enabled() {
		logger.Info("event_publisher_disabled")
		return &Publisher{cfg: cfg, logger: logger}, nil
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, fmt.Errorf("eventbus: topic must not be empty")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	}
	return newPublisherWithWriter(cfg, logger, writer), nil
}

// newPublisherWithWriter wires the provided writer into the publisher.
func newPublisherWithWriter(cfg Config, logger *slog.Logger, writer messageWriter) *Publisher {
	return &Publisher{
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "event_publisher"), slog.String("topic", cfg.Topic)),
		writer:  writer,
		enabled: true,
		queue:   make(chan kafka.Message, queueSize),
	}
}

// Start launches the background write loop.
func (p *Publisher) Start(ctx context.Context) {
	if !p.enabled {
		return
	}
	p.startOnce.Do(func() {
		runCtx, cancel := context.WithCancel(ctx)
		p.cancel = cancel
		p.wg.Add(1)
		go p.run(runCtx)
		p.logger.Info("event_publisher_started")
	})
}

// Publish encodes value and queues it under key.
func (p *Publisher) Publish(ctx context.Context, key string, value any) error {
	if !p.enabled {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("eventbus: encode event: %w", err)
	}

	message := kafka.Message{Key: []byte(key), Value: payload, Time: time.Now().UTC()}
	select {
	case p.queue <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.logger.Warn("event_publish_dropped", slog.String("key", key), slog.String("reason", "queue_full"))
		return nil
	}
}

func (p *Publisher) run(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case message := <-p.queue:
			p.write(ctx, message)
		case <-ctx.Done():
			p.drain()
			return
		}
	}
}

// drain flushes whatever is still queued when the loop is cancelled.
func (p *Publisher) drain() {
	for {
		select {
		case message := <-p.queue:
			p.write(context.Background(), message)
		default:
			return
		}
	}
}

func (p *Publisher) write(ctx context.Context, message kafka.Message) {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, message); err != nil {
		p.logger.Error("event_publish_failed", slog.String("key", string(message.Key)), slog.Any("error", err))
		return
	}
	p.logger.Debug("event_published", slog.String("key", string(message.Key)))
}

// Stop flushes queued events and closes the writer.
func (p *Publisher) Stop(ctx context.Context) error {
	if !p.enabled {
		return nil
	}

	var stopErr error
	p.stopOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			stopErr = ctx.Err()
		}

		if err := p.writer.Close(); err != nil {
			p.logger.Error("event_publisher_close_failed", slog.Any("error", err))
		}
		p.logger.Info("event_publisher_stopped")
	})
	return stopErr
}
