// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinetrend/internal/platform/redis"
)

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := redis.NewClient(context.Background(), "memcached://localhost:11211", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "invalid URL")
}
