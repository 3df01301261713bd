// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audio_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinetrend/internal/audio"
)

// silentWAV builds a 16-bit stereo PCM WAV file of the given length.
func silentWAV(sampleRate int, duration time.Duration) []byte {
	frames := int(duration * time.Duration(sampleRate) / time.Second)
	dataSize := frames * 4

	var buffer bytes.Buffer
	buffer.WriteString("RIFF")
	_ = binary.Write(&buffer, binary.LittleEndian, uint32(36+dataSize))
	buffer.WriteString("WAVE")

	buffer.WriteString("fmt ")
	_ = binary.Write(&buffer, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buffer, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buffer, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buffer, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buffer, binary.LittleEndian, uint32(sampleRate*4))
	_ = binary.Write(&buffer, binary.LittleEndian, uint16(4))
	_ = binary.Write(&buffer, binary.LittleEndian, uint16(16))

	buffer.WriteString("data")
	_ = binary.Write(&buffer, binary.LittleEndian, uint32(dataSize))
	buffer.Write(make([]byte, dataSize))
	return buffer.Bytes()
}

/*
TestAssets_Path keeps every URI inside the asset directory.
*/
func TestAssets_Path(t *testing.T) {
	assets := audio.NewAssets("/srv/assets")

	resolved, err := assets.Path("soundtracks/Amélie.mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/assets", "soundtracks", "Amélie.mp3"), resolved)

	resolved, err = assets.Path("soundtracks/../sound1.mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/assets", "sound1.mp3"), resolved)

	for _, uri := range []string{"", "../secret.mp3", "/etc/passwd", "a/../../b.mp3", ".."} {
		_, err := assets.Path(uri)
		assert.ErrorIs(t, err, audio.ErrInvalidURI, uri)
	}
}

/*
TestDecode_UnsupportedFormat rejects unknown extensions.
*/
func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := audio.Decode("clip.ogg", []byte("OggS"), 0)
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)
}

/*
TestSilentBackend_Open learns the clip duration and tracks transport state.
*/
func TestSilentBackend_Open(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sound1.wav"), silentWAV(8000, 2*time.Second), 0o600))

	backend := audio.NewSilentBackend(audio.NewAssets(dir))
	player, err := backend.Open(context.Background(), "sound1.wav")
	require.NoError(t, err)

	duration, known := player.Duration()
	assert.True(t, known)
	assert.InDelta(t, float64(2*time.Second), float64(duration), float64(10*time.Millisecond))

	require.NoError(t, player.Play())
	player.SetVolume(1.5)
	assert.Equal(t, 1.0, player.Volume())
	player.SetVolume(0.25)
	assert.Equal(t, 0.25, player.Volume())
	player.Pause()
	require.NoError(t, player.Rewind())
	require.NoError(t, player.Close())
	assert.Error(t, player.Play())
}

/*
TestSilentBackend_OpenFailures reports missing and undecodable assets.
*/
func TestSilentBackend_OpenFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("not a wav"), 0o600))
	backend := audio.NewSilentBackend(audio.NewAssets(dir))

	_, err := backend.Open(context.Background(), "missing.mp3")
	assert.Error(t, err)

	_, err = backend.Open(context.Background(), "broken.wav")
	assert.Error(t, err)

	_, err = backend.Open(context.Background(), "../outside.mp3")
	assert.ErrorIs(t, err, audio.ErrInvalidURI)
}
