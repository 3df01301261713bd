// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinetrend/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"?page=0&limit=-4", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"?page=x&limit=9999", pagination.Params{Page: 1, Limit: pagination.MaxLimit}},
	}

	for _, tt := range tests {
		got := pagination.FromRequest(httptest.NewRequest("GET", "/movies"+tt.query, nil))
		assert.Equal(t, tt.want, got, tt.query)
	}

	assert.Equal(t, 20, pagination.Params{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 10}.Offset())
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 2, Total: 3, TotalPages: 2, HasNext: true}, pagination.NewMeta(1, 2, 3))
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, pagination.NewMeta(2, 2, 3))
	assert.Zero(t, pagination.NewMeta(1, 0, 3).TotalPages)
}
