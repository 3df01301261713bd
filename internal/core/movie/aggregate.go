// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import "github.com/taibuivan/cinetrend/pkg/slice"

// TopRatedByYear keeps the highest rated record of each release year.
//
// Years appear in the order they are first seen; ties keep the earlier record.
func TopRatedByYear(records []Record) []Record {
	return slice.BestPerGroup(records,
		func(record Record) int { return record.ReleaseYear },
		func(current, candidate Record) bool { return candidate.VoteAverage > current.VoteAverage },
	)
}
