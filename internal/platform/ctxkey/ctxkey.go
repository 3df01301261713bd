// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys shared by middleware, handlers and the
// playback sequencer. Values are read through ctxutil.
package ctxkey

type key int

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = iota

	// KeyLogger carries the per-request [*log/slog.Logger].
	KeyLogger

	// KeySelectionSource names what triggered a playback selection ("http", "test", ...).
	KeySelectionSource
)
