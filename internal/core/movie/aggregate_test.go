// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinetrend/internal/core/movie"
)

func titlesOf(records []movie.Record) []string {
	titles := make([]string, len(records))
	for i, record := range records {
		titles[i] = record.Title
	}
	return titles
}

/*
TestTopRatedByYear_Reference keeps B for 2001 and C for 2002.
*/
func TestTopRatedByYear_Reference(t *testing.T) {
	records := []movie.Record{
		{Title: "A", ReleaseYear: 2001, VoteAverage: 7.2},
		{Title: "B", ReleaseYear: 2001, VoteAverage: 8.5},
		{Title: "C", ReleaseYear: 2002, VoteAverage: 6.0},
	}

	assert.Equal(t, []string{"B", "C"}, titlesOf(movie.TopRatedByYear(records)))
}

/*
TestTopRatedByYear_Properties checks tie handling, year order, dominance and idempotence.
*/
func TestTopRatedByYear_Properties(t *testing.T) {
	records := []movie.Record{
		{Title: "First", ReleaseYear: 1999, VoteAverage: 7},
		{Title: "Later", ReleaseYear: 2010, VoteAverage: 5},
		{Title: "Tie", ReleaseYear: 1999, VoteAverage: 7},
		{Title: "Unknown", ReleaseYear: 0, VoteAverage: 9},
		{Title: "Low", ReleaseYear: 1999, VoteAverage: 6.9},
		{Title: "AlsoUnknown", ReleaseYear: 0, VoteAverage: 9.5},
	}

	best := movie.TopRatedByYear(records)
	assert.Equal(t, []string{"First", "Later", "AlsoUnknown"}, titlesOf(best))

	for _, winner := range best {
		for _, peer := range records {
			if peer.ReleaseYear == winner.ReleaseYear {
				assert.GreaterOrEqual(t, winner.VoteAverage, peer.VoteAverage)
			}
		}
	}

	assert.Equal(t, best, movie.TopRatedByYear(best))
	assert.Equal(t, "First", records[0].Title)
	assert.Nil(t, movie.TopRatedByYear(nil))
}
