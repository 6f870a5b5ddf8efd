// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-match-strategies R4.3 (similarity scoring).
package editor

import (
	"fmt"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Scorer returns the similarity of two strings in [0, 1]. It must be
// symmetric enough for thresholding and return 1.0 only for identical input.
type Scorer func(a, b string) float64

const (
	ScorerRatio       = "ratio"
	ScorerLevenshtein = "levenshtein"
)

// ScorerByName resolves a configured scorer name.
func ScorerByName(name string) (Scorer, error) {
	switch name {
	case "", ScorerRatio:
		return Ratio, nil
	case ScorerLevenshtein:
		return Levenshtein, nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", name)
	}
}

// Ratio is the ratio of matching characters: 2*M/T where M is the number of
// runes in the matching blocks found by difflib's SequenceMatcher and T the
// total rune count of both strings.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	m := difflib.NewMatcher(runeStrings(a), runeStrings(b))
	return m.Ratio()
}

// Levenshtein computes the Levenshtein-based similarity ratio between two
// strings using the go-diff library.
func Levenshtein(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	sim := 1.0 - float64(distance)/float64(maxLen)
	if sim < 0 {
		return 0
	}
	return sim
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
