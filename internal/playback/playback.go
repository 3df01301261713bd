// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package playback sequences the audio that accompanies a chart selection.

A [Sequencer] owns every audio handle in the process. Each selection starts
one or more handles, schedules a fade that ends exactly at end-of-media and
ramps their volume to silence on a fixed tick.

Lifecycle of a handle:

	idle ──play──▶ playing ──delay elapsed──▶ fading ──volume 0──▶ stopped
	  │                                                              ▲
	  └──────────────────── new selection cancels ───────────────────┘

Only one fade job exists at a time. A new selection synchronously stops the
previous handles before any new handle is opened, so two sequences never overlap.
*/
package playback

import (
	"context"
	"time"
)

// # Audio Contract

// Player is one decoded, controllable audio stream.
type Player interface {
	Play() error
	Pause()
	Rewind() error
	SetVolume(volume float64)
	Volume() float64

	// Duration is the total media length; ok is false when it cannot be determined.
	Duration() (duration time.Duration, ok bool)

	// Close releases the decoder and any device resources.
	Close() error
}

// Backend opens players for asset URIs.
type Backend interface {
	Open(context context.Context, uri string) (Player, error)
}

// # Handle State

// State is the lifecycle position of a handle.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StateFading  State = "fading"
	StateStopped State = "stopped"
)

// Role tells what part a stream plays in a selection.
type Role string

const (
	RoleMain       Role = "main"
	RoleBackground Role = "background"
	RoleSoundtrack Role = "soundtrack"
)

// FadePhase is the lifecycle position of a fade job.
type FadePhase string

const (
	PhaseScheduled FadePhase = "scheduled"
	PhaseFading    FadePhase = "fading"
	PhaseCompleted FadePhase = "completed"
)

// # Reports

// Selection identifies the record a sequence was started for.
type Selection struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year"`
	WonAward    bool   `json:"won_award"`
	Source      string `json:"source"`
}

// HandleStatus is a value copy of one handle.
type HandleStatus struct {
	ID         string  `json:"id"`
	Role       Role    `json:"role"`
	URI        string  `json:"uri"`
	State      State   `json:"state"`
	Volume     float64 `json:"volume"`
	DurationMS *int64  `json:"duration_ms,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// FadeStatus is a value copy of the current fade job.
type FadeStatus struct {
	Phase        FadePhase `json:"phase"`
	DelayMS      int64     `json:"delay_ms"`
	DurationMS   int64     `json:"duration_ms"`
	IntervalMS   int64     `json:"interval_ms"`
	Steps        int       `json:"steps"`
	Ticks        int       `json:"ticks"`
	Synchronized bool      `json:"synchronized"`
}

// Report describes the sequencer state after an operation.
type Report struct {
	Selection *Selection     `json:"selection,omitempty"`
	Handles   []HandleStatus `json:"handles"`
	Fade      *FadeStatus    `json:"fade,omitempty"`
}
