// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinetrend/pkg/slice"
)

type scored struct {
	name  string
	group int
	score float64
}

func byGroup(s scored) int { return s.group }

func higherScore(current, candidate scored) bool { return candidate.score > current.score }

/*
TestBestPerGroup_StrictReplaceKeepsFirstOnTie verifies first-seen wins ties.
*/
func TestBestPerGroup_StrictReplaceKeepsFirstOnTie(t *testing.T) {
	input := []scored{
		{"a", 1, 5},
		{"b", 2, 3},
		{"c", 1, 5},
		{"d", 2, 4},
		{"e", 1, 6},
	}

	got := slice.BestPerGroup(input, byGroup, higherScore)

	assert.Equal(t, []scored{{"e", 1, 6}, {"d", 2, 4}}, got)
}

/*
TestBestPerGroup_FirstOccurrenceOrder verifies output follows key first appearance.
*/
func TestBestPerGroup_FirstOccurrenceOrder(t *testing.T) {
	input := []scored{{"x", 2002, 1}, {"y", 1999, 1}, {"z", 2010, 1}}

	got := slice.BestPerGroup(input, byGroup, higherScore)

	assert.Equal(t, []string{"x", "y", "z"}, slice.Map(got, func(s scored) string { return s.name }))
}

/*
TestBestPerGroup_Idempotent verifies that reducing the output again is a no-op.
*/
func TestBestPerGroup_Idempotent(t *testing.T) {
	input := []scored{{"a", 1, 2}, {"b", 1, 9}, {"c", 3, 1}, {"d", 3, 1}}

	once := slice.BestPerGroup(input, byGroup, higherScore)
	twice := slice.BestPerGroup(once, byGroup, higherScore)

	assert.Equal(t, once, twice)
}

/*
TestBestPerGroup_DoesNotMutateInput verifies the input slice is untouched.
*/
func TestBestPerGroup_DoesNotMutateInput(t *testing.T) {
	input := []scored{{"a", 1, 1}, {"b", 1, 2}}
	snapshot := append([]scored(nil), input...)

	_ = slice.BestPerGroup(input, byGroup, higherScore)

	assert.Equal(t, snapshot, input)
	assert.Nil(t, slice.BestPerGroup[scored, int](nil, byGroup, higherScore))
}

func TestFilterAndReduce(t *testing.T) {
	evens := slice.Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, evens)

	sum := slice.Reduce([]int{1, 2, 3}, 0, func(acc, v int) int { return acc + v })
	assert.Equal(t, 6, sum)

	assert.Nil(t, slice.Filter([]int{1, 3}, func(v int) bool { return v%2 == 0 }))
}

func TestMap_NeverNil(t *testing.T) {
	lengths := slice.Map([]string{"a", "bcd"}, func(s string) int { return len(s) })
	assert.Equal(t, []int{1, 3}, lengths)

	empty := slice.Map[string, int](nil, func(s string) int { return len(s) })
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
