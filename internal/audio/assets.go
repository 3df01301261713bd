// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audio resolves and decodes the clips played for chart selections.

Assets are addressed by URIs relative to one asset directory (for example
"sound1.mp3" or "soundtracks/Amélie.mp3"). MP3 and WAV are decoded with the
ebiten decoders; every decoded stream is 16-bit little-endian stereo, so
its duration follows from its byte length and sample rate.

Two [playback.Backend] implementations exist:

  - [SilentBackend] in this package, for headless hosts and tests.
  - ebitenaudio.Backend, which plays through the ebiten audio context.
*/
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// bytesPerFrame is the size of one 16-bit stereo frame.
const bytesPerFrame = 4

var (
	// ErrUnsupportedFormat is returned for extensions other than .mp3 and .wav.
	ErrUnsupportedFormat = errors.New("audio: unsupported format")

	// ErrInvalidURI is returned for URIs that escape the asset directory.
	ErrInvalidURI = errors.New("audio: invalid asset uri")

	errPlayerClosed = errors.New("audio: player closed")
)

// # Assets

// Assets resolves clip URIs under one directory.
type Assets struct {
	dir string
}

// NewAssets returns an [Assets] rooted at dir.
func NewAssets(dir string) *Assets {
	return &Assets{dir: dir}
}

// Path maps uri to a file below the asset directory.
func (assets *Assets) Path(uri string) (string, error) {
	slashed := filepath.ToSlash(strings.TrimSpace(uri))
	if slashed == "" || strings.HasPrefix(slashed, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}

	clean := path.Clean(slashed)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	return filepath.Join(assets.dir, filepath.FromSlash(clean)), nil
}

// Read returns the raw bytes of uri.
func (assets *Assets) Read(uri string) ([]byte, error) {
	file, err := assets.Path(uri)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("audio: read %s: %w", uri, err)
	}
	return data, nil
}

// # Decoding

// Stream is a decoded 16-bit stereo PCM stream.
type Stream interface {
	io.ReadSeeker
	Length() int64
	SampleRate() int
}

// Decode decodes data by the extension of uri. A sampleRate of 0 keeps the source rate.
func Decode(uri string, data []byte, sampleRate int) (Stream, error) {
	reader := bytes.NewReader(data)

	switch strings.ToLower(path.Ext(uri)) {
	case ".mp3":
		if sampleRate == 0 {
			return mp3.DecodeWithoutResampling(reader)
		}
		return mp3.DecodeWithSampleRate(sampleRate, reader)
	case ".wav":
		if sampleRate == 0 {
			return wav.DecodeWithoutResampling(reader)
		}
		return wav.DecodeWithSampleRate(sampleRate, reader)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, uri)
	}
}

// StreamDuration derives the media length; ok is false when the length is unknown.
func StreamDuration(stream Stream) (time.Duration, bool) {
	length, rate := stream.Length(), stream.SampleRate()
	if length <= 0 || rate <= 0 {
		return 0, false
	}
	return time.Duration(length) * time.Second / time.Duration(bytesPerFrame*rate), true
}
