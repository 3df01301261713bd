// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"sync"

	"github.com/taibuivan/cinetrend/internal/platform/dberr"
)

// # Movie Data Access

// Repository defines the storage contract for the movie catalogue.
type Repository interface {

	/*
		ReplaceAll swaps the stored dataset for records, keeping their order.

		Parameters:
		  - context: context.Context
		  - records: []Record

		Returns:
		  - error: Storage failures; the previous dataset stays intact
	*/
	ReplaceAll(context context.Context, records []Record) error

	/*
		List returns one page of records in source order.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []Record: Page contents
		  - int: Total record count
		  - error: Retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]Record, int, error)

	/*
		FindBySlug resolves a single record by its slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Record: The stored record
		  - error: dberr.ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Record, error)
}

// MemoryRepository keeps the catalogue in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []Record
	bySlug  map[string]int
}

// NewMemoryRepository returns an empty [MemoryRepository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{bySlug: map[string]int{}}
}

// ReplaceAll stores a private copy of records.
func (repository *MemoryRepository) ReplaceAll(_ context.Context, records []Record) error {
	stored := make([]Record, len(records))
	copy(stored, records)

	index := make(map[string]int, len(stored))
	for i, record := range stored {
		index[record.Slug] = i
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.records = stored
	repository.bySlug = index
	return nil
}

// List returns a copied page.
func (repository *MemoryRepository) List(_ context.Context, limit, offset int) ([]Record, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	total := len(repository.records)
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}

	page := make([]Record, end-start)
	copy(page, repository.records[start:end])
	return page, total, nil
}

// FindBySlug returns a copy of the matching record.
func (repository *MemoryRepository) FindBySlug(_ context.Context, slug string) (*Record, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	i, ok := repository.bySlug[slug]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	record := repository.records[i]
	return &record, nil
}
