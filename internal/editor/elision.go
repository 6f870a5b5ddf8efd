// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-match-strategies R3 (elided search/replace).
package editor

import (
	"regexp"
	"strings"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

// elisionMarker matches a line holding only "...", optionally indented.
var elisionMarker = regexp.MustCompile(`(?m)^\s*\.\.\.\n`)

// splitElisions splits text on marker lines, keeping each marker as its own
// piece, so pieces alternate anchor, marker, anchor, ... and always start and
// end with an anchor (possibly empty).
func splitElisions(text string) []string {
	locs := elisionMarker.FindAllStringIndex(text, -1)
	pieces := make([]string, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		pieces = append(pieces, text[prev:loc[0]], text[loc[0]:loc[1]])
		prev = loc[1]
	}
	return append(pieces, text[prev:])
}

// elisionReplace applies an elided search/replace pair to whole. It returns
// ok=false when the search has no markers. Anchor segments are applied in
// order to a working copy; the document is returned only if every segment
// applies, so a failure never yields a partially edited document.
func elisionReplace(whole, part, replace string) (string, bool, error) {
	partPieces := splitElisions(part)
	replacePieces := splitElisions(replace)

	if len(partPieces) != len(replacePieces) {
		return "", false, &types.ElisionError{
			Kind:           types.ErrUnbalancedElision,
			SearchMarkers:  len(partPieces) / 2,
			ReplaceMarkers: len(replacePieces) / 2,
		}
	}
	if len(partPieces) == 1 {
		return "", false, nil
	}

	markers := len(partPieces) / 2
	for i := 1; i < len(partPieces); i += 2 {
		if partPieces[i] != replacePieces[i] {
			return "", false, &types.ElisionError{
				Kind:           types.ErrMisalignedElision,
				SearchMarkers:  markers,
				ReplaceMarkers: markers,
				Index:          i / 2,
			}
		}
	}

	doc := whole
	for i := 0; i < len(partPieces); i += 2 {
		p, r := partPieces[i], replacePieces[i]
		switch {
		case p == "" && r == "":
			continue
		case p == "":
			if !strings.HasSuffix(doc, "\n") {
				doc += "\n"
			}
			doc += r
		default:
			if n := strings.Count(doc, p); n != 1 {
				return "", false, &types.ElisionError{
					Kind:           types.ErrAmbiguousElisionSegment,
					SearchMarkers:  markers,
					ReplaceMarkers: markers,
					Index:          i / 2,
					Occurrences:    n,
					Segment:        p,
				}
			}
			doc = strings.Replace(doc, p, r, 1)
		}
	}
	return doc, true, nil
}
