// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chart_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinetrend/internal/core/chart"
	"github.com/taibuivan/cinetrend/internal/core/movie"
	"github.com/taibuivan/cinetrend/internal/platform/apperr"
	"github.com/taibuivan/cinetrend/internal/platform/ctxutil"
	"github.com/taibuivan/cinetrend/internal/playback"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type recordingPlayer struct {
	mu      sync.Mutex
	played  []string
	sources []string
}

func (player *recordingPlayer) PlayForSelection(context context.Context, record movie.Record) playback.Report {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.played = append(player.played, record.Title)
	player.sources = append(player.sources, ctxutil.GetSelectionSource(context))
	return playback.Report{
		Selection: &playback.Selection{Slug: record.Slug, Title: record.Title},
		Handles:   []playback.HandleStatus{{ID: "h1", Role: playback.RoleMain, State: playback.StatePlaying, Volume: 1}},
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []chart.SelectionEvent
	err    error
}

func (publisher *recordingPublisher) Publish(_ context.Context, key string, value any) error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	publisher.keys = append(publisher.keys, key)
	if event, ok := value.(chart.SelectionEvent); ok {
		publisher.events = append(publisher.events, event)
	}
	return publisher.err
}

/*
TestService_SelectRoutesSortedIndex maps the clicked index onto the year-sorted sequence.
*/
func TestService_SelectRoutesSortedIndex(t *testing.T) {
	player := &recordingPlayer{}
	publisher := &recordingPublisher{}
	service := chart.NewService(chart.Options{}, player, publisher, discardLogger())
	service.Render(context.Background(), bestRecords())

	selection, err := service.Select(ctxutil.WithSelectionSource(context.Background(), "test"), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, selection.PointIndex)
	assert.Equal(t, "B", selection.Movie.Title)
	assert.Equal(t, "B", selection.Playback.Selection.Title)
	assert.Equal(t, []string{"B"}, player.played)
	assert.Equal(t, []string{"test"}, player.sources)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, []string{"b-2001"}, publisher.keys)
	event := publisher.events[0]
	assert.Equal(t, 1, event.PointIndex)
	assert.Equal(t, 2001, event.ReleaseYear)
	assert.True(t, event.WonAward)
	assert.Equal(t, "test", event.Source)
	assert.False(t, event.SelectedAt.IsZero())
}

/*
TestService_SelectOutOfRange is a validation error and starts nothing.
*/
func TestService_SelectOutOfRange(t *testing.T) {
	player := &recordingPlayer{}
	service := chart.NewService(chart.Options{}, player, nil, discardLogger())

	_, err := service.Select(context.Background(), 0)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	service.Render(context.Background(), bestRecords())
	for _, index := range []int{-1, 3} {
		_, err = service.Select(context.Background(), index)
		assert.Error(t, err, "index %d", index)
	}
	assert.Empty(t, player.played)
}

/*
TestService_PublishFailureIsSwallowed still returns the selection.
*/
func TestService_PublishFailureIsSwallowed(t *testing.T) {
	player := &recordingPlayer{}
	publisher := &recordingPublisher{err: errors.New("queue full")}
	service := chart.NewService(chart.Options{}, player, publisher, discardLogger())
	service.Render(context.Background(), bestRecords())

	selection, err := service.Select(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "C", selection.Movie.Title)
	assert.Equal(t, []string{"unknown"}, player.sources)
}

/*
TestService_RenderReplacesFigure rebuilds points and figure on every render.
*/
func TestService_RenderReplacesFigure(t *testing.T) {
	service := chart.NewService(chart.Options{}, &recordingPlayer{}, nil, discardLogger())
	assert.Empty(t, service.Points())
	assert.Empty(t, service.Figure().Data[0].X)

	service.Render(context.Background(), bestRecords())
	assert.Len(t, service.Points(), 3)
	assert.Equal(t, []int{0, 2001, 2002}, service.Figure().Data[0].X)

	points := service.Points()
	points[0].Title = "mutated"
	assert.Equal(t, "Z", service.Points()[0].Title)

	service.Render(context.Background(), nil)
	assert.Empty(t, service.Points())
}
