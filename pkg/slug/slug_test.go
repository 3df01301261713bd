// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinetrend/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Amélie", "amelie"},
		{"The Lord of the Rings: The Return of the King", "the-lord-of-the-rings-the-return-of-the-king"},
		{"  Crouching Tiger, Hidden Dragon  ", "crouching-tiger-hidden-dragon"},
		{"8½", "8"},
		{"Y tu mamá también", "y-tu-mama-tambien"},
		{"¿?", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.From(tt.in), tt.in)
	}
}

func TestRegistry(t *testing.T) {
	registry := slug.Registry{}

	assert.Equal(t, "amelie-2001", registry.Movie("Amélie", 2001))
	assert.Equal(t, "amelie-2001-2", registry.Movie("Amelie", 2001))
	assert.Equal(t, "amelie-2002", registry.Movie("Amélie", 2002))
	assert.Equal(t, "untitled-0", registry.Movie("!!!", 0))
	assert.Equal(t, "amelie-2001-3", registry.Claim("amelie-2001"))
}
