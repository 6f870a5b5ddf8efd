// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editblock defines the public interface for go-editblock, a fuzzy
// SEARCH/REPLACE patch engine for text documents.
// Implements: prd006-public-interface R1, R2, R3;
//
//	docs/ARCHITECTURE § Public Interface.
package editblock

import (
	"errors"
	"log/slog"

	"github.com/petar-djukic/go-editblock/internal/editor"
	"github.com/petar-djukic/go-editblock/pkg/types"
)

// Error types for the editblock API. The match and elision errors are the
// ones defined in pkg/types, re-exported so callers need a single import.
//
// Implements: prd006-public-interface R3.1-R3.3.
var (
	ErrInvalidConfig = errors.New("invalid config")

	ErrNoMatch                 = types.ErrNoMatch
	ErrUnbalancedElision       = types.ErrUnbalancedElision
	ErrMisalignedElision       = types.ErrMisalignedElision
	ErrAmbiguousElisionSegment = types.ErrAmbiguousElisionSegment
	ErrDocumentNotFound        = types.ErrDocumentNotFound
)

// Scorer names accepted by Config.Scorer.
const (
	ScorerRatio       = editor.ScorerRatio
	ScorerLevenshtein = editor.ScorerLevenshtein
)

// Config configures a Patcher. The zero value is valid and selects the
// defaults.
//
// Implements: prd006-public-interface R1.1-R1.6.
type Config struct {
	FuzzyThreshold float64      // Minimum fuzzy similarity in (0,1] (default 0.8)
	WindowScale    float64      // Fuzzy window length tolerance in [0,1) (default 0.1)
	Scorer         string       // "ratio" or "levenshtein" (default "ratio")
	FenceOpen      string       // Opening fence line (default "```")
	FenceClose     string       // Closing fence line (default "```")
	Logger         *slog.Logger // Debug output (default discards)
}

// Document is the already-resolved target of a patch.
type Document = editor.Document

// Result is the outcome of a successful patch.
type Result = editor.Result

// Diagnostic is the error returned when no strategy matches.
type Diagnostic = types.Diagnostic

// ElisionError is the error returned for an invalid elided edit.
type ElisionError = types.ElisionError
