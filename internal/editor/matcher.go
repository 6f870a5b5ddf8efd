// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editor implements fuzzy search/replace over text documents.
// Implements: prd002-match-strategies R1-R4;
//
//	docs/ARCHITECTURE § Patch Engine.
package editor

import (
	"math"
	"slices"
	"strings"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

const (
	defaultFuzzyThreshold = 0.8
	defaultWindowScale    = 0.1
)

// matchResult holds the outcome of a successful line-based match.
type matchResult struct {
	content    string           // Document text after substitution
	window     types.Window     // Matched line range in the document
	stage      types.MatchStage // Which stage found the match
	similarity float64          // Similarity score (1.0 except for fuzzy)
}

// perfectOrWhitespace tries the exact matcher, then the whitespace-tolerant
// matcher.
func perfectOrWhitespace(whole, part, replace []string) *matchResult {
	if w, ok := exactWindow(whole, part); ok {
		return &matchResult{
			content:    splice(whole, w.Start, w.End, replace),
			window:     w,
			stage:      types.StageExact,
			similarity: 1.0,
		}
	}
	return whitespaceMatch(whole, part, replace)
}

// exactWindow returns the earliest window whose lines equal part, terminators
// included.
//
// Implements: prd002-match-strategies R1.
func exactWindow(whole, part []string) (types.Window, bool) {
	n := len(part)
	if n == 0 {
		return types.Window{}, false
	}
	for i := 0; i+n <= len(whole); i++ {
		if slices.Equal(whole[i:i+n], part) {
			return types.Window{Start: i, End: i + n}, true
		}
	}
	return types.Window{}, false
}

// whitespaceMatch finds the earliest window that matches part once every
// line's leading whitespace is ignored, provided the document adds the same
// indentation prefix to every non-blank line. The replacement is re-indented
// by that prefix.
//
// Implements: prd002-match-strategies R2.
func whitespaceMatch(whole, part, replace []string) *matchResult {
	part, replace = outdent(part, replace)

	n := len(part)
	if n == 0 {
		return nil
	}
	for i := 0; i+n <= len(whole); i++ {
		add, ok := uniformIndent(whole[i:i+n], part)
		if !ok {
			continue
		}
		indented := make([]string, len(replace))
		for j, r := range replace {
			if isBlank(r) {
				indented[j] = r
			} else {
				indented[j] = add + r
			}
		}
		return &matchResult{
			content:    splice(whole, i, i+n, indented),
			window:     types.Window{Start: i, End: i + n},
			stage:      types.StageWhitespace,
			similarity: 1.0,
		}
	}
	return nil
}

// outdent removes the smallest leading-whitespace width, counted in runes,
// shared by the non-blank lines of part and replace from both.
func outdent(part, replace []string) ([]string, []string) {
	shared := -1
	for _, lines := range [][]string{part, replace} {
		for _, l := range lines {
			if isBlank(l) {
				continue
			}
			if w := leadingWidth(l); shared < 0 || w < shared {
				shared = w
			}
		}
	}
	if shared <= 0 {
		return part, replace
	}
	strip := func(lines []string) []string {
		out := make([]string, len(lines))
		for i, l := range lines {
			if isBlank(l) {
				out[i] = l
			} else {
				out[i] = dropRunes(l, shared)
			}
		}
		return out
	}
	return strip(part), strip(replace)
}

// uniformIndent reports the whitespace prefix chunk adds to every non-blank
// line of part. It fails if any line differs beyond leading whitespace, if
// the prefixes differ, or if there is no non-blank line to measure.
func uniformIndent(chunk, part []string) (string, bool) {
	for j := range chunk {
		if trimLeading(chunk[j]) != trimLeading(part[j]) {
			return "", false
		}
	}

	add := ""
	found := false
	for j := range chunk {
		if isBlank(chunk[j]) {
			continue
		}
		diff := len(chunk[j]) - len(part[j])
		if diff < 0 {
			return "", false
		}
		prefix := chunk[j][:diff]
		if !found {
			add, found = prefix, true
		} else if prefix != add {
			return "", false
		}
	}
	return add, found
}

// fuzzyMatch scores every window whose length is within scale of the search
// line count and substitutes replace for the best one, provided it scores at
// least threshold. Ties keep the earliest window, enumerating lengths then
// offsets in ascending order.
//
// Implements: prd002-match-strategies R4.
func fuzzyMatch(whole []string, part string, partLines, replace []string, score Scorer, threshold, scale float64) *matchResult {
	minLen, maxLen := windowLengths(len(partLines), scale)

	best := 0.0
	bestStart, bestEnd := -1, -1
	for length := minLen; length < maxLen; length++ {
		for i := 0; i+length <= len(whole); i++ {
			chunk := strings.Join(whole[i:i+length], "")
			if sim := score(chunk, part); sim > best {
				best = sim
				bestStart, bestEnd = i, i+length
			}
		}
	}

	if bestStart < 0 || best < threshold {
		return nil
	}
	return &matchResult{
		content:    splice(whole, bestStart, bestEnd, replace),
		window:     types.Window{Start: bestStart, End: bestEnd},
		stage:      types.StageFuzzy,
		similarity: best,
	}
}

// windowLengths returns the half-open range of candidate window lengths,
// [floor(n*(1-scale)), ceil(n*(1+scale))).
func windowLengths(n int, scale float64) (int, int) {
	return int(math.Floor(float64(n) * (1 - scale))), int(math.Ceil(float64(n) * (1 + scale)))
}

// findClosestMatch finds the best partial match in content for diagnostics.
// Returns the closest match text, its similarity, and 1-based line range.
func findClosestMatch(whole []string, part string, partLines []string, score Scorer) (closest string, sim float64, lineStart, lineEnd int) {
	if len(whole) == 0 || len(partLines) == 0 {
		return "", 0, 0, 0
	}

	n := len(partLines)
	if n > len(whole) {
		n = len(whole)
	}

	var bestSim float64
	var bestStart int
	for i := 0; i+n <= len(whole); i++ {
		s := score(strings.Join(whole[i:i+n], ""), part)
		if s > bestSim {
			bestSim = s
			bestStart = i
		}
	}

	if bestSim > 0 {
		closest = strings.Join(whole[bestStart:bestStart+n], "")
		return closest, bestSim, bestStart + 1, bestStart + n
	}
	return "", 0, 0, 0
}
