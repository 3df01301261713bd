// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ebitenaudio plays clips through the ebiten audio context.
package ebitenaudio

import (
	"context"
	"fmt"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/taibuivan/cinetrend/internal/audio"
	"github.com/taibuivan/cinetrend/internal/playback"
)

// Backend opens ebiten players resampled to the context rate.
//
// Only one Backend may exist per process because ebiten allows a single audio context.
type Backend struct {
	assets  *audio.Assets
	context *eaudio.Context
}

// NewBackend creates the process audio context at sampleRate.
func NewBackend(assets *audio.Assets, sampleRate int) *Backend {
	return &Backend{assets: assets, context: eaudio.NewContext(sampleRate)}
}

// Open decodes uri and wraps it in a ready-to-play player.
func (backend *Backend) Open(_ context.Context, uri string) (playback.Player, error) {
	data, err := backend.assets.Read(uri)
	if err != nil {
		return nil, err
	}

	stream, err := audio.Decode(uri, data, backend.context.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("ebitenaudio: decode %s: %w", uri, err)
	}

	player, err := backend.context.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("ebitenaudio: new player %s: %w", uri, err)
	}

	duration, known := audio.StreamDuration(stream)
	return &devicePlayer{player: player, duration: duration, known: known}, nil
}

// devicePlayer adapts [eaudio.Player] to [playback.Player].
type devicePlayer struct {
	player   *eaudio.Player
	duration time.Duration
	known    bool
}

func (p *devicePlayer) Play() error {
	p.player.Play()
	return nil
}

func (p *devicePlayer) Pause()                   { p.player.Pause() }
func (p *devicePlayer) Rewind() error            { return p.player.Rewind() }
func (p *devicePlayer) SetVolume(volume float64) { p.player.SetVolume(volume) }
func (p *devicePlayer) Volume() float64          { return p.player.Volume() }
func (p *devicePlayer) Close() error             { return p.player.Close() }

func (p *devicePlayer) Duration() (time.Duration, bool) {
	return p.duration, p.known
}
