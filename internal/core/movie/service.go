// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/cinetrend/internal/platform/apperr"
	"github.com/taibuivan/cinetrend/internal/platform/validate"
)

// # Service Layer

// Loader produces the records behind a location. [Source] is the production implementation.
type Loader interface {
	Load(context context.Context, location string) []Record
}

// Listener receives the yearly best records after every successful refresh.
type Listener func(context context.Context, best []Record)

// ErrEmptyRefresh is returned when a refresh produced no records.
var ErrEmptyRefresh = apperr.ServiceUnavailable("Movie dataset could not be loaded")

// Service keeps the latest dataset and its yearly reduction current.
type Service struct {
	loader     Loader
	repository Repository
	location   string
	logger     *slog.Logger
	now        func() time.Time

	mu        sync.RWMutex
	records   []Record
	best      []Record
	snapshot  Snapshot
	listeners []Listener

	// refreshMu serializes refreshes so listeners observe them in order.
	refreshMu sync.Mutex
}

// NewService constructs a movie [Service] reading from location.
func NewService(loader Loader, repository Repository, location string, logger *slog.Logger) *Service {
	return &Service{
		loader:     loader,
		repository: repository,
		location:   location,
		logger:     logger,
		now:        time.Now,
		snapshot:   Snapshot{Source: location},
	}
}

// AddListener registers fn to be called after each refresh.
func (service *Service) AddListener(fn Listener) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.listeners = append(service.listeners, fn)
}

// Location returns the configured dataset location.
func (service *Service) Location() string {
	return service.location
}

/*
Refresh reloads the dataset and recomputes the yearly best.

Description: An empty load keeps the previous dataset and returns
[ErrEmptyRefresh]. Records are persisted before they become visible;
listeners run after the swap, outside the lock.

Parameters:
  - context: context.Context

Returns:
  - Snapshot: Description of the dataset now being served
  - error: ErrEmptyRefresh or repository failures
*/
func (service *Service) Refresh(context context.Context) (Snapshot, error) {
	service.refreshMu.Lock()
	defer service.refreshMu.Unlock()

	records := service.loader.Load(context, service.location)
	if len(records) == 0 {
		service.logger.Error("movie_refresh_empty", slog.String("location", service.location))
		return service.Snapshot(), ErrEmptyRefresh
	}

	if err := service.repository.ReplaceAll(context, records); err != nil {
		service.logger.Error("movie_refresh_store_failed", slog.Any("error", err))
		return service.Snapshot(), err
	}

	best := TopRatedByYear(records)
	snapshot := Snapshot{
		Records:     len(records),
		Years:       len(best),
		Source:      service.location,
		RefreshedAt: service.now().UTC(),
	}

	service.mu.Lock()
	service.records = records
	service.best = best
	service.snapshot = snapshot
	listeners := append([]Listener(nil), service.listeners...)
	service.mu.Unlock()

	service.logger.Info("movie_refresh_completed",
		slog.Int("records", snapshot.Records),
		slog.Int("years", snapshot.Years),
	)

	for _, listener := range listeners {
		listener(context, best)
	}

	return snapshot, nil
}

// Snapshot describes the dataset currently being served.
func (service *Service) Snapshot() Snapshot {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return service.snapshot
}

// Best returns a copy of the current yearly best records.
func (service *Service) Best() []Record {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return append([]Record(nil), service.best...)
}

// Records returns a copy of the full current dataset.
func (service *Service) Records() []Record {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return append([]Record(nil), service.records...)
}

// List returns one page of the stored catalogue.
func (service *Service) List(context context.Context, limit, offset int) ([]Record, int, error) {
	return service.repository.List(context, limit, offset)
}

// FieldSlug names the slug path parameter in validation errors.
const FieldSlug = "slug"

// Get resolves a record by slug. A malformed slug is a validation error.
func (service *Service) Get(context context.Context, slug string) (*Record, error) {
	validator := &validate.Validator{}
	if err := validator.Slug(FieldSlug, slug).Err(); err != nil {
		return nil, err
	}
	return service.repository.FindBySlug(context, slug)
}
