// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taibuivan/cinetrend/internal/platform/constants"
)

// # Fetchers

// Fetcher retrieves the raw CSV text behind a location.
type Fetcher interface {
	Fetch(context context.Context, location string) ([]byte, error)
}

// maxCSVBytes caps a single download.
const maxCSVBytes = 32 << 20

// ErrTooLarge is returned when a download exceeds the size cap.
var ErrTooLarge = errors.New("movie: csv exceeds size limit")

// HTTPFetcher downloads CSV text over http(s).
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher returns an [HTTPFetcher]; a nil client gets one bounded by [constants.FetchTimeout].
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: constants.FetchTimeout}
	}
	return &HTTPFetcher{client: client, maxBytes: maxCSVBytes}
}

// Fetch performs a GET and rejects non-2xx responses and oversized bodies.
func (fetcher *HTTPFetcher) Fetch(context context.Context, location string) ([]byte, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("movie: build request: %w", err)
	}

	response, err := fetcher.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("movie: fetch %s: %w", location, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("movie: fetch %s: unexpected status %d", location, response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, fetcher.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("movie: read body: %w", err)
	}
	if int64(len(body)) > fetcher.maxBytes {
		return nil, fmt.Errorf("movie: fetch %s: %w (%d bytes)", location, ErrTooLarge, fetcher.maxBytes)
	}
	return body, nil
}

// FileFetcher reads CSV text from a local path or a file:// URL.
type FileFetcher struct{}

// Fetch reads the whole file.
func (FileFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	path := LocalPath(location)
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("movie: read %s: %w", path, err)
	}
	return body, nil
}

// LocalPath returns the filesystem path of a local location, or "" for remote ones.
func LocalPath(location string) string {
	if IsRemote(location) {
		return ""
	}
	if rest, ok := strings.CutPrefix(location, "file://"); ok {
		if parsed, err := url.Parse(location); err == nil && parsed.Path != "" {
			return parsed.Path
		}
		return rest
	}
	return location
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// SchemeFetcher dispatches to the HTTP or file fetcher by location scheme.
type SchemeFetcher struct {
	Remote Fetcher
	Local  Fetcher
}

// NewSchemeFetcher wires the default HTTP and file fetchers.
func NewSchemeFetcher() *SchemeFetcher {
	return &SchemeFetcher{Remote: NewHTTPFetcher(nil), Local: FileFetcher{}}
}

// Fetch delegates by scheme.
func (fetcher *SchemeFetcher) Fetch(context context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		return fetcher.Remote.Fetch(context, location)
	}
	return fetcher.Local.Fetch(context, location)
}

// # Cache Decorator

// Cache is the subset of the redis client used to memoize downloads.
type Cache interface {
	Get(context context.Context, key string) *redis.StringCmd
	Set(context context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedFetcher memoizes raw CSV text per remote location in Redis. Local
// locations always go to the inner fetcher so file edits are seen at once.
//
// Cache failures never fail a fetch; they are logged and the inner fetcher is used.
type CachedFetcher struct {
	inner  Fetcher
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedFetcher decorates inner with a Redis cache.
func NewCachedFetcher(inner Fetcher, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedFetcher {
	return &CachedFetcher{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

// Fetch returns the cached text when present, otherwise fetches and stores it.
func (fetcher *CachedFetcher) Fetch(context context.Context, location string) ([]byte, error) {
	if !IsRemote(location) {
		return fetcher.inner.Fetch(context, location)
	}
	key := constants.RedisPrefixCSV + location

	cached, err := fetcher.cache.Get(context, key).Bytes()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		fetcher.logger.Warn("csv_cache_read_failed", slog.String("key", key), slog.Any("error", err))
	}

	body, err := fetcher.inner.Fetch(context, location)
	if err != nil {
		return nil, err
	}

	if err := fetcher.cache.Set(context, key, body, fetcher.ttl).Err(); err != nil {
		fetcher.logger.Warn("csv_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}

	return body, nil
}

// # Source

// Source turns a location into cleaned records.
type Source struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewSource constructs a [Source].
func NewSource(fetcher Fetcher, logger *slog.Logger) *Source {
	return &Source{fetcher: fetcher, logger: logger}
}

/*
Load fetches and parses the dataset at location.

Description: Fails soft. Any fetch error, parse error or panic during the
transformation is logged as movie_ingestion_failed and yields an empty slice.

Parameters:
  - context: context.Context
  - location: string (http(s) URL, file:// URL or local path)

Returns:
  - []Record: Cleaned records in source order, never nil
*/
func (source *Source) Load(context context.Context, location string) (records []Record) {
	defer func() {
		if recovered := recover(); recovered != nil {
			source.logger.Error("movie_ingestion_failed",
				slog.String("location", location),
				slog.Any("panic", recovered),
			)
			records = []Record{}
		}
	}()

	body, err := source.fetcher.Fetch(context, location)
	if err != nil {
		source.fail(location, err)
		return []Record{}
	}

	parsed, err := Parse(bytes.NewReader(body))
	if err != nil {
		source.fail(location, err)
		return []Record{}
	}

	source.logger.Info("movie_ingestion_completed",
		slog.String("location", location),
		slog.Int("records", len(parsed)),
	)
	return parsed
}

func (source *Source) fail(location string, err error) {
	source.logger.Error("movie_ingestion_failed",
		slog.String("location", location),
		slog.Any("error", err),
	)
}
