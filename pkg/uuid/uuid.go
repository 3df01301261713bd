// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid issues the identifiers used for playback handles and request
correlation.

Values are UUIDv7 so they sort by creation time in log streams. When the
time-ordered generator cannot read entropy the package degrades to a random
v4 value instead of failing the caller.
*/
package uuid

import "github.com/google/uuid"

// New returns a fresh identifier string.
func New() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
