// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug builds ASCII identifiers for movies such as "amelie-2001".
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback stands in for titles that contain no letters or digits.
const Fallback = "untitled"

// stripMarks decomposes accented letters and drops the combining marks.
var stripMarks = transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}))

// From lowercases s, drops accents and joins every run of ASCII letters and
// digits with single hyphens. Anything else separates words.
func From(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	builder.Grow(len(folded))
	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return builder.String()
}

// Registry hands out unique slugs. The first use of a base keeps it as is;
// repeats get "-2", "-3" and so on. A Registry is not safe for concurrent use.
type Registry map[string]int

// Movie returns the unique slug for a title released in year.
func (registry Registry) Movie(title string, year int) string {
	base := From(title)
	if base == "" {
		base = Fallback
	}
	return registry.Claim(base + "-" + strconv.Itoa(year))
}

// Claim reserves base and returns it, suffixed when it was already taken.
func (registry Registry) Claim(base string) string {
	registry[base]++
	if count := registry[base]; count > 1 {
		return base + "-" + strconv.Itoa(count)
	}
	return base
}
