// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movie defines the movie catalogue: the canonical record shape, CSV
ingestion, the yearly best reduction and the service that keeps them current.

Core Responsibility:

  - Ingestion: Fetches CSV text and maps drifting column names onto [Record].
  - Cleaning: Drops rows whose vote fields are not finite numbers.
  - Reduction: Computes the best rated movie of every release year.

Records are immutable once parsed; every refresh replaces the whole dataset.
*/
package movie

import "time"

// # Domain Entities

// Record is one cleaned row of the movie dataset.
type Record struct {
	// Slug is a stable identifier derived from title and year (e.g. "amelie-2001").
	Slug string `json:"slug"`

	Title          string `json:"title"`
	ReleaseYear    int    `json:"release_year"`
	Director       string `json:"director"`
	CountryOfBirth string `json:"country_of_birth"`
	ExtraFilmNote  string `json:"extra_film_note,omitempty"`

	// WonAward is true iff the source literal was exactly "True".
	WonAward bool `json:"won_award"`

	VoteCount   float64 `json:"vote_count"`
	VoteAverage float64 `json:"vote_average"`

	// Runtime and Budget are only present in some dataset variants.
	Runtime *float64 `json:"runtime,omitempty"`
	Budget  *float64 `json:"budget,omitempty"`
}

// Snapshot describes the dataset produced by one refresh.
type Snapshot struct {
	Records     int       `json:"records"`
	Years       int       `json:"years"`
	Source      string    `json:"source"`
	RefreshedAt time.Time `json:"refreshed_at"`
}
