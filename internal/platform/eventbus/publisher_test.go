// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	fail     bool
	closed   bool
}

func (writer *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	if writer.fail {
		return errors.New("broker unavailable")
	}
	writer.messages = append(writer.messages, msgs...)
	return nil
}

func (writer *recordingWriter) Close() error {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	writer.closed = true
	return nil
}

func (writer *recordingWriter) count() int {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	return len(writer.messages)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

/*
TestPublisher_Disabled is a no-op without brokers.
*/
func TestPublisher_Disabled(t *testing.T) {
	publisher, err := NewPublisher(Config{Topic: "movie.selections"}, discardLogger())
	require.NoError(t, err)

	publisher.Start(context.Background())
	assert.NoError(t, publisher.Publish(context.Background(), "k", map[string]int{"a": 1}))
	assert.NoError(t, publisher.Stop(context.Background()))
}

/*
TestNewPublisher_Validation requires a logger and a topic.
*/
func TestNewPublisher_Validation(t *testing.T) {
	_, err := NewPublisher(Config{}, nil)
	assert.Error(t, err)

	_, err = NewPublisher(Config{Brokers: []string{"localhost:9092"}}, discardLogger())
	assert.Error(t, err)
}

/*
TestPublisher_DeliversJSON writes queued events and flushes them on Stop.
*/
func TestPublisher_DeliversJSON(t *testing.T) {
	writer := &recordingWriter{}
	publisher := newPublisherWithWriter(Config{Brokers: []string{"kafka:9092"}, Topic: "movie.selections"}, discardLogger(), writer)
	publisher.Start(context.Background())

	require.NoError(t, publisher.Publish(context.Background(), "b-2001", map[string]any{"slug": "b-2001", "point_index": 0}))
	require.NoError(t, publisher.Publish(context.Background(), "c-2002", map[string]any{"slug": "c-2002", "point_index": 1}))

	assert.Eventually(t, func() bool { return writer.count() == 2 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, publisher.Stop(ctx))

	writer.mu.Lock()
	defer writer.mu.Unlock()
	assert.True(t, writer.closed)
	assert.Equal(t, "b-2001", string(writer.messages[0].Key))
	assert.JSONEq(t, `{"slug":"b-2001","point_index":0}`, string(writer.messages[0].Value))
}

/*
TestPublisher_WriteFailure never surfaces broker errors to callers.
*/
func TestPublisher_WriteFailure(t *testing.T) {
	writer := &recordingWriter{fail: true}
	publisher := newPublisherWithWriter(Config{Brokers: []string{"kafka:9092"}, Topic: "t"}, discardLogger(), writer)
	publisher.Start(context.Background())

	assert.NoError(t, publisher.Publish(context.Background(), "k", "v"))
	assert.NoError(t, publisher.Stop(context.Background()))
	assert.Zero(t, writer.count())
}
