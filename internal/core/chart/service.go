// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/cinetrend/internal/core/movie"
	"github.com/taibuivan/cinetrend/internal/platform/ctxutil"
	"github.com/taibuivan/cinetrend/internal/platform/validate"
	"github.com/taibuivan/cinetrend/internal/playback"
)

// FieldPointIndex is the request field carrying the clicked point.
const FieldPointIndex = "point_index"

// Player starts the audio for a selected record. [playback.Sequencer] implements it.
type Player interface {
	PlayForSelection(context context.Context, record movie.Record) playback.Report
}

// Publisher emits selection events. A nil Publisher disables publishing.
type Publisher interface {
	Publish(context context.Context, key string, value any) error
}

// SelectionEvent is published for every resolved click.
type SelectionEvent struct {
	PointIndex  int       `json:"point_index"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	ReleaseYear int       `json:"release_year"`
	WonAward    bool      `json:"won_award"`
	VoteAverage float64   `json:"vote_average"`
	Source      string    `json:"source"`
	SelectedAt  time.Time `json:"selected_at"`
}

// Selection is the outcome of a click.
type Selection struct {
	PointIndex int             `json:"point_index"`
	Movie      movie.Record    `json:"movie"`
	Playback   playback.Report `json:"playback"`
}

// Service keeps the rendered figure and routes clicks to playback.
type Service struct {
	opts      Options
	player    Player
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time

	mu     sync.RWMutex
	points []movie.Record
	figure Figure
}

// NewService constructs a chart [Service] with an empty figure.
func NewService(opts Options, player Player, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		opts:      opts,
		player:    player,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		figure:    Build(nil, opts),
	}
}

// Render rebuilds the figure from the yearly best. It matches [movie.Listener].
func (service *Service) Render(_ context.Context, best []movie.Record) {
	points := Sorted(best)
	figure := Build(points, service.opts)

	service.mu.Lock()
	service.points = points
	service.figure = figure
	service.mu.Unlock()

	service.logger.Info("chart_rendered", slog.Int("points", len(points)))
}

// Figure returns the current figure.
func (service *Service) Figure() Figure {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return service.figure
}

// Points returns a copy of the rendered sequence.
func (service *Service) Points() []movie.Record {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return append([]movie.Record(nil), service.points...)
}

/*
Select resolves a clicked point and starts its playback.

Parameters:
  - context: context.Context
  - index: int (position in the rendered sequence)

Returns:
  - Selection: The resolved record and the playback report
  - error: apperr validation error when index is out of range
*/
func (service *Service) Select(context context.Context, index int) (Selection, error) {
	service.mu.RLock()
	points := service.points
	service.mu.RUnlock()

	validator := &validate.Validator{}
	if err := validator.Index(FieldPointIndex, index, len(points)).Err(); err != nil {
		return Selection{}, err
	}

	record := points[index]
	report := service.player.PlayForSelection(context, record)

	if service.publisher != nil {
		event := SelectionEvent{
			PointIndex:  index,
			Slug:        record.Slug,
			Title:       record.Title,
			ReleaseYear: record.ReleaseYear,
			WonAward:    record.WonAward,
			VoteAverage: record.VoteAverage,
			Source:      ctxutil.GetSelectionSource(context),
			SelectedAt:  service.now().UTC(),
		}
		if err := service.publisher.Publish(context, record.Slug, event); err != nil {
			service.logger.Warn("chart_selection_publish_failed", slog.Any("error", err))
		}
	}

	return Selection{PointIndex: index, Movie: record, Playback: report}, nil
}
