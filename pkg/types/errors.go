// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-error-taxonomy R1-R4.
package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is the category of a failed search; see Diagnostic.
	ErrNoMatch = errors.New("search text not found")

	// ErrUnbalancedElision: search and replace carry different numbers of "..." lines.
	ErrUnbalancedElision = errors.New("unpaired ... in search/replace")

	// ErrMisalignedElision: corresponding "..." lines differ between search and replace.
	ErrMisalignedElision = errors.New("unmatched ... in search/replace")

	// ErrAmbiguousElisionSegment: an anchor segment occurs zero or several times.
	ErrAmbiguousElisionSegment = errors.New("elision segment is not unique in document")

	// ErrDocumentNotFound is returned when the target does not exist and the
	// search text is not blank.
	ErrDocumentNotFound = errors.New("document not found")
)

// ElisionError describes an invalid elided search/replace pair. Kind is one
// of ErrUnbalancedElision, ErrMisalignedElision or ErrAmbiguousElisionSegment.
type ElisionError struct {
	Kind           error
	SearchMarkers  int    // "..." lines in the search text
	ReplaceMarkers int    // "..." lines in the replace text
	Index          int    // Marker index (misaligned) or anchor segment index (ambiguous)
	Occurrences    int    // Times the segment occurs in the document (ambiguous only)
	Segment        string // Offending segment text (ambiguous only)
}

func (e *ElisionError) Error() string {
	switch e.Kind {
	case ErrUnbalancedElision:
		return fmt.Sprintf("%v: search has %d, replace has %d", e.Kind, e.SearchMarkers, e.ReplaceMarkers)
	case ErrMisalignedElision:
		return fmt.Sprintf("%v: marker %d differs", e.Kind, e.Index+1)
	case ErrAmbiguousElisionSegment:
		return fmt.Sprintf("%v: segment %d occurs %d times", e.Kind, e.Index+1, e.Occurrences)
	default:
		return fmt.Sprintf("elision error: %v", e.Kind)
	}
}

func (e *ElisionError) Unwrap() error {
	return e.Kind
}
