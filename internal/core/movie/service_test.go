// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinetrend/internal/core/movie"
	"github.com/taibuivan/cinetrend/internal/platform/apperr"
	"github.com/taibuivan/cinetrend/internal/platform/dberr"
)

// # Fakes

type scriptedLoader struct {
	batches [][]movie.Record
	calls   int
}

func (loader *scriptedLoader) Load(context.Context, string) []movie.Record {
	batch := loader.batches[min(loader.calls, len(loader.batches)-1)]
	loader.calls++
	return batch
}

type failingRepository struct {
	*movie.MemoryRepository
}

func (failingRepository) ReplaceAll(context.Context, []movie.Record) error {
	return errors.New("disk full")
}

func referenceRecords() []movie.Record {
	return []movie.Record{
		{Slug: "a-2001", Title: "A", ReleaseYear: 2001, VoteAverage: 7.2, VoteCount: 100},
		{Slug: "b-2001", Title: "B", ReleaseYear: 2001, VoteAverage: 8.5, VoteCount: 400, WonAward: true},
		{Slug: "c-2002", Title: "C", ReleaseYear: 2002, VoteAverage: 6.0, VoteCount: 25},
	}
}

// # Tests

/*
TestService_Refresh stores records, reduces them and notifies listeners.
*/
func TestService_Refresh(t *testing.T) {
	loader := &scriptedLoader{batches: [][]movie.Record{referenceRecords()}}
	service := movie.NewService(loader, movie.NewMemoryRepository(), "final.csv", discardLogger())

	var notified []movie.Record
	service.AddListener(func(_ context.Context, best []movie.Record) {
		notified = best
	})

	snapshot, err := service.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.Records)
	assert.Equal(t, 2, snapshot.Years)
	assert.Equal(t, "final.csv", snapshot.Source)
	assert.False(t, snapshot.RefreshedAt.IsZero())

	assert.Equal(t, []string{"B", "C"}, titlesOf(service.Best()))
	assert.Equal(t, []string{"B", "C"}, titlesOf(notified))
	assert.Len(t, service.Records(), 3)

	page, total, err := service.List(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"B", "C"}, titlesOf(page))

	record, err := service.Get(context.Background(), "c-2002")
	require.NoError(t, err)
	assert.Equal(t, "C", record.Title)
}

/*
TestService_EmptyRefreshKeepsPrevious serves the last good dataset after a failed load.
*/
func TestService_EmptyRefreshKeepsPrevious(t *testing.T) {
	loader := &scriptedLoader{batches: [][]movie.Record{referenceRecords(), {}}}
	service := movie.NewService(loader, movie.NewMemoryRepository(), "final.csv", discardLogger())

	notifications := 0
	service.AddListener(func(context.Context, []movie.Record) { notifications++ })

	first, err := service.Refresh(context.Background())
	require.NoError(t, err)

	second, err := service.Refresh(context.Background())
	assert.ErrorIs(t, err, movie.ErrEmptyRefresh)
	assert.Equal(t, first, second)
	assert.Len(t, service.Records(), 3)
	assert.Equal(t, 1, notifications)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 503, appErr.HTTPStatus)
}

/*
TestService_StoreFailure leaves the served dataset unchanged.
*/
func TestService_StoreFailure(t *testing.T) {
	loader := &scriptedLoader{batches: [][]movie.Record{referenceRecords()}}
	service := movie.NewService(loader, failingRepository{movie.NewMemoryRepository()}, "final.csv", discardLogger())

	_, err := service.Refresh(context.Background())
	assert.Error(t, err)
	assert.Empty(t, service.Best())
}

/*
TestMemoryRepository covers paging bounds and slug lookups.
*/
func TestMemoryRepository(t *testing.T) {
	repository := movie.NewMemoryRepository()
	require.NoError(t, repository.ReplaceAll(context.Background(), referenceRecords()))

	page, total, err := repository.List(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, page)

	page, _, err = repository.List(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, titlesOf(page))

	_, err = repository.FindBySlug(context.Background(), "missing-1900")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
