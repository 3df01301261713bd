// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds table and column identifiers used by the PostgreSQL
// repositories, so queries never embed raw names.
package schema

// CoreMovieTable represents the 'core.movie' table
type CoreMovieTable struct {
	Table          string
	Position       string
	Slug           string
	Title          string
	ReleaseYear    string
	Director       string
	CountryOfBirth string
	ExtraFilmNote  string
	WonAward       string
	VoteCount      string
	VoteAverage    string
	Runtime        string
	Budget         string
	IngestedAt     string
}

// CoreMovie is the schema definition for core.movie
var CoreMovie = CoreMovieTable{
	Table:          "core.movie",
	Position:       "position",
	Slug:           "slug",
	Title:          "title",
	ReleaseYear:    "releaseyear",
	Director:       "director",
	CountryOfBirth: "countryofbirth",
	ExtraFilmNote:  "extrafilmnote",
	WonAward:       "wonaward",
	VoteCount:      "votecount",
	VoteAverage:    "voteaverage",
	Runtime:        "runtime",
	Budget:         "budget",
	IngestedAt:     "ingestedat",
}

// Columns lists the writable columns in insert order.
func (t CoreMovieTable) Columns() []string {
	return []string{
		t.Position, t.Slug, t.Title, t.ReleaseYear, t.Director, t.CountryOfBirth,
		t.ExtraFilmNote, t.WonAward, t.VoteCount, t.VoteAverage, t.Runtime, t.Budget,
	}
}
