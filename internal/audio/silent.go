// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audio

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/cinetrend/internal/playback"
)

// SilentBackend decodes clips only to learn their duration and plays nothing.
type SilentBackend struct {
	assets *Assets
}

// NewSilentBackend returns a [SilentBackend] reading from assets.
func NewSilentBackend(assets *Assets) *SilentBackend {
	return &SilentBackend{assets: assets}
}

// Open reads and decodes uri.
func (backend *SilentBackend) Open(_ context.Context, uri string) (playback.Player, error) {
	data, err := backend.assets.Read(uri)
	if err != nil {
		return nil, err
	}

	stream, err := Decode(uri, data, 0)
	if err != nil {
		return nil, err
	}

	duration, known := StreamDuration(stream)
	return &silentPlayer{duration: duration, known: known, volume: 1}, nil
}

// silentPlayer tracks transport state in memory.
type silentPlayer struct {
	mu       sync.Mutex
	duration time.Duration
	known    bool
	volume   float64
	playing  bool
	closed   bool
}

func (player *silentPlayer) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.closed {
		return errPlayerClosed
	}
	player.playing = true
	return nil
}

func (player *silentPlayer) Pause() {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.playing = false
}

func (player *silentPlayer) Rewind() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.closed {
		return errPlayerClosed
	}
	return nil
}

func (player *silentPlayer) SetVolume(volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.volume = min(max(volume, 0), 1)
}

func (player *silentPlayer) Volume() float64 {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.volume
}

func (player *silentPlayer) Duration() (time.Duration, bool) {
	return player.duration, player.known
}

func (player *silentPlayer) Close() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.playing = false
	player.closed = true
	return nil
}
