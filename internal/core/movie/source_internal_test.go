// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestHTTPFetcher_RejectsOversizedBody fails instead of returning a truncated CSV.
*/
func TestHTTPFetcher_RejectsOversizedBody(t *testing.T) {
	const csvText = "original_title,release_date,vote_quantity,vote_average\nA,2001,100,8.5\n"

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(writer, csvText)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.Client())

	fetcher.maxBytes = int64(len(csvText))
	body, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, csvText, string(body))

	fetcher.maxBytes = int64(len(csvText)) - 2
	_, err = fetcher.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrTooLarge)

	records := NewSource(fetcher, slog.New(slog.NewJSONHandler(io.Discard, nil))).Load(context.Background(), server.URL)
	assert.Empty(t, records)
}
