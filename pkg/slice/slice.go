// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice holds the generic helpers used to shape records and playback
handles: Map, Filter, Reduce and BestPerGroup.
*/
package slice

// Map applies transform to every element. The result is never nil, so an
// empty input encodes as an empty JSON array.
func Map[T, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns the elements that satisfy keep, in input order.
func Filter[T any](input []T, keep func(T) bool) []T {
	var result []T
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

// Reduce folds input into a single value, left to right.
func Reduce[T, U any](input []T, initial U, fold func(accumulator U, current T) U) U {
	result := initial
	for _, v := range input {
		result = fold(result, v)
	}
	return result
}

// BestPerGroup keeps one representative element per key.
//
// The first element seen for a key becomes its representative; a later element
// replaces it only when replace(current, candidate) returns true. The result lists
// representatives in the order their keys first appeared. The input is not modified.
func BestPerGroup[T any, K comparable](input []T, key func(T) K, replace func(current, candidate T) bool) []T {
	if input == nil {
		return nil
	}

	positions := make(map[K]int)
	result := make([]T, 0)

	for _, v := range input {
		k := key(v)
		position, found := positions[k]
		if !found {
			positions[k] = len(result)
			result = append(result, v)
			continue
		}
		if replace(result[position], v) {
			result[position] = v
		}
	}

	return result
}
