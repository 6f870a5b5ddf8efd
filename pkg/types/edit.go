// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across go-editblock packages.
// Implements: prd001-patch-engine R5 (shared types);
//
//	prd002-match-strategies R6 (MatchStage, Window, Diagnostic).
package types

import "fmt"

// Edit represents a single search/replace edit against one file.
type Edit struct {
	FilePath   string // Target file path
	OldContent string // Text to search for (blank means append or create)
	NewContent string // Replacement text
}

// MatchStage identifies which matching strategy succeeded.
type MatchStage int

const (
	StageExact      MatchStage = iota // Line-for-line match
	StageWhitespace                   // Match with a uniform leading-whitespace offset
	StageElision                      // Anchor segments around "..." lines
	StageFuzzy                        // Similarity-threshold match
	StageAppend                       // Blank search, replacement appended
	StageNone                         // No match found
)

func (s MatchStage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StageWhitespace:
		return "whitespace"
	case StageElision:
		return "elision"
	case StageFuzzy:
		return "fuzzy"
	case StageAppend:
		return "append"
	case StageNone:
		return "none"
	default:
		return "unknown"
	}
}

// MarshalText lets stages appear by name in JSON output.
func (s MatchStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Window is a half-open line range [Start, End) into a document's lines.
type Window struct {
	Start int
	End   int
}

// Len returns the number of lines covered by the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// ApplyResult describes the outcome of applying a single edit.
type ApplyResult struct {
	FilePath   string     // File that was modified
	Stage      MatchStage // Which matching stage succeeded
	Similarity float64    // Fuzzy similarity score (1.0 for the other stages)
	Created    bool       // True if the file did not exist before the edit
	Original   string     `json:"-"` // Content before the edit
	Updated    string     `json:"-"` // Content after the edit
}

// Diagnostic describes why a match failed, with the closest region found so
// the caller can retry with a corrected search snippet. It is the NoMatch
// failure and satisfies errors.Is(err, ErrNoMatch).
type Diagnostic struct {
	FilePath         string  // File where the match was attempted
	SearchText       string  // What we searched for
	ClosestMatch     string  // Best partial match found (empty if none)
	Similarity       float64 // Similarity score of closest match
	ClosestLineStart int     // Starting line of the closest match (1-based)
	ClosestLineEnd   int     // Ending line of the closest match (1-based)
}

func (d Diagnostic) Error() string {
	if d.ClosestMatch == "" {
		return fmt.Sprintf("no match found in %s", d.FilePath)
	}
	return fmt.Sprintf("no match in %s (closest match at lines %d-%d, similarity %.2f)",
		d.FilePath, d.ClosestLineStart, d.ClosestLineEnd, d.Similarity)
}

// Is reports ErrNoMatch as the category of every Diagnostic.
func (d Diagnostic) Is(target error) bool {
	return target == ErrNoMatch
}

// Applier applies an Edit to a file.
type Applier interface {
	Apply(edit Edit) (*ApplyResult, error)
}
