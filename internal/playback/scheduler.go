// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playback

import (
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop prevents future runs. It is safe to call more than once.
	Stop()
}

// Scheduler runs callbacks later. Callbacks never run on the caller's goroutine.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Timer
	Every(interval time.Duration, fn func()) Timer
}

// ClockScheduler schedules on the wall clock.
type ClockScheduler struct{}

// AfterFunc runs fn once after delay.
func (ClockScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	return afterTimer{timer: time.AfterFunc(delay, fn)}
}

// Every runs fn every interval until stopped.
func (ClockScheduler) Every(interval time.Duration, fn func()) Timer {
	t := &tickTimer{ticker: time.NewTicker(interval), done: make(chan struct{})}
	go t.run(fn)
	return t
}

type afterTimer struct {
	timer *time.Timer
}

func (t afterTimer) Stop() { t.timer.Stop() }

type tickTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickTimer) run(fn func()) {
	for {
		select {
		case <-t.ticker.C:
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		case <-t.done:
			return
		}
	}
}

func (t *tickTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
