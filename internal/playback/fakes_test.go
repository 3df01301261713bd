// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playback_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/cinetrend/internal/playback"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// # Manual Clock

// manualScheduler fires callbacks only when the test advances its clock.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	scheduler *manualScheduler
	at        time.Duration
	interval  time.Duration
	fn        func()
	stopped   bool
}

func (timer *manualTimer) Stop() {
	timer.scheduler.mu.Lock()
	defer timer.scheduler.mu.Unlock()
	timer.stopped = true
}

func (scheduler *manualScheduler) AfterFunc(delay time.Duration, fn func()) playback.Timer {
	return scheduler.add(delay, 0, fn)
}

func (scheduler *manualScheduler) Every(interval time.Duration, fn func()) playback.Timer {
	return scheduler.add(interval, interval, fn)
}

func (scheduler *manualScheduler) add(delay, interval time.Duration, fn func()) *manualTimer {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	timer := &manualTimer{scheduler: scheduler, at: scheduler.now + delay, interval: interval, fn: fn}
	scheduler.timers = append(scheduler.timers, timer)
	return timer
}

// Advance moves the clock forward, running due callbacks in time order.
func (scheduler *manualScheduler) Advance(d time.Duration) {
	scheduler.mu.Lock()
	target := scheduler.now + d
	scheduler.mu.Unlock()

	for {
		scheduler.mu.Lock()
		var next *manualTimer
		for _, timer := range scheduler.timers {
			if timer.stopped || timer.at > target {
				continue
			}
			if next == nil || timer.at < next.at {
				next = timer
			}
		}
		if next == nil {
			scheduler.now = target
			scheduler.mu.Unlock()
			return
		}

		scheduler.now = next.at
		if next.interval > 0 {
			next.at += next.interval
		} else {
			next.stopped = true
		}
		fn := next.fn
		scheduler.mu.Unlock()

		fn()
	}
}

// Pending counts timers that can still fire.
func (scheduler *manualScheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	pending := 0
	for _, timer := range scheduler.timers {
		if !timer.stopped {
			pending++
		}
	}
	return pending
}

// # Fake Audio

type clip struct {
	duration time.Duration
	unknown  bool
	playErr  error
}

type fakeBackend struct {
	mu      sync.Mutex
	clips   map[string]clip
	players []*fakePlayer
	events  []string
}

func newFakeBackend(clips map[string]clip) *fakeBackend {
	return &fakeBackend{clips: clips}
}

func (backend *fakeBackend) record(event string) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.events = append(backend.events, event)
}

func (backend *fakeBackend) Events() []string {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	return append([]string(nil), backend.events...)
}

func (backend *fakeBackend) Open(_ context.Context, uri string) (playback.Player, error) {
	backend.record("open " + uri)

	backend.mu.Lock()
	defer backend.mu.Unlock()

	c, ok := backend.clips[uri]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", uri, errors.New("no such asset"))
	}
	player := &fakePlayer{backend: backend, uri: uri, clip: c, volume: 1}
	backend.players = append(backend.players, player)
	return player, nil
}

// Player returns the n-th opened player for uri.
func (backend *fakeBackend) Player(uri string, n int) *fakePlayer {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	for _, player := range backend.players {
		if player.uri != uri {
			continue
		}
		if n == 0 {
			return player
		}
		n--
	}
	return nil
}

type fakePlayer struct {
	backend *fakeBackend
	uri     string
	clip    clip

	playing    bool
	volume     float64
	volumeSets int
	rewinds    int
	closed     bool
}

func (player *fakePlayer) Play() error {
	if player.clip.playErr != nil {
		return player.clip.playErr
	}
	player.playing = true
	player.backend.record("play " + player.uri)
	return nil
}

func (player *fakePlayer) Pause() {
	player.playing = false
	player.backend.record("pause " + player.uri)
}

func (player *fakePlayer) Rewind() error {
	player.rewinds++
	return nil
}

func (player *fakePlayer) SetVolume(volume float64) {
	player.volume = volume
	player.volumeSets++
}

func (player *fakePlayer) Volume() float64 { return player.volume }

func (player *fakePlayer) Duration() (time.Duration, bool) {
	return player.clip.duration, !player.clip.unknown
}

func (player *fakePlayer) Close() error {
	player.closed = true
	player.backend.record("close " + player.uri)
	return nil
}
