// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editformat parses SEARCH/REPLACE block text into Edit structs and
// applies them in order.
// Implements: prd005-block-format R1, R2, R4, R5;
//
//	docs/ARCHITECTURE § Edit Format Parser.
package editformat

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

const (
	markerSearch  = "<<<<<<< SEARCH"
	markerDivider = "======="
	markerReplace = ">>>>>>> REPLACE"
)

// ParseError describes a malformed edit block.
//
// Implements: prd005-block-format R4.1-R4.3.
type ParseError struct {
	Position int    // Line number where the block starts (1-based)
	RawText  string // The raw text of the malformed block
	Message  string // What went wrong
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Position, e.Message)
}

// NoEditsFoundError is returned when the text contains no edit blocks.
//
// Implements: prd005-block-format R4.4.
type NoEditsFoundError struct{}

func (e *NoEditsFoundError) Error() string {
	return "no edit blocks found in response"
}

// ParseResult holds the outcome of parsing block text.
//
// Implements: prd005-block-format R5.1-R5.3.
type ParseResult struct {
	Edits         []types.Edit  // Successfully parsed edits
	ParseErrors   []*ParseError // Errors from malformed blocks
	ReasoningText string        // Non-edit text surrounding the blocks
	BlocksFound   int           // Total blocks attempted
	BlocksParsed  int           // Blocks that produced valid edits
}

// Parse extracts SEARCH/REPLACE blocks from text and returns them as Edit
// structs. The file path is the line before the SEARCH marker, optionally
// followed by a fence opener; a block without one reuses the previous
// block's path. Snippet text is returned raw; wrapper stripping belongs to
// the engine. Malformed blocks produce ParseErrors. When no blocks are
// found at all, returns a NoEditsFoundError.
//
// Implements: prd005-block-format R1.1-R1.8, R4.1-R4.4, R5.1-R5.3.
func Parse(response string) (*ParseResult, error) {
	if strings.TrimSpace(response) == "" {
		return nil, &NoEditsFoundError{}
	}

	result := &ParseResult{}
	lines := strings.Split(response, "\n")
	var reasoning strings.Builder
	lastPath := ""
	i := 0

	for i < len(lines) {
		// Look for a SEARCH marker.
		searchIdx := -1
		for j := i; j < len(lines); j++ {
			if isMarker(lines[j], markerSearch) {
				searchIdx = j
				break
			}
		}

		if searchIdx < 0 {
			// No more blocks. Rest is reasoning.
			for ; i < len(lines); i++ {
				appendReasoning(&reasoning, lines[i])
			}
			break
		}

		// Everything before this block is reasoning text, except the file
		// path line and a fence opener between it and the SEARCH marker.
		headerStart := searchIdx
		if headerStart-1 >= i && isMarkdownFence(lines[headerStart-1]) {
			headerStart--
		}
		filePath := ""
		if headerStart-1 >= i {
			if p := extractFilePath(lines[headerStart-1]); p != "" {
				filePath = p
				headerStart--
			}
		}
		for ; i < headerStart; i++ {
			appendReasoning(&reasoning, lines[i])
		}
		if filePath == "" {
			filePath = lastPath
		}

		// Skip past the SEARCH marker.
		i = searchIdx + 1
		result.BlocksFound++

		// Collect search text until ======= divider.
		var searchLines []string
		foundDivider := false
		for i < len(lines) {
			if isMarker(lines[i], markerDivider) {
				foundDivider = true
				i++
				break
			}
			searchLines = append(searchLines, lines[i])
			i++
		}

		if !foundDivider {
			result.ParseErrors = append(result.ParseErrors, &ParseError{
				Position: searchIdx + 1,
				RawText:  reconstructBlock(lines, searchIdx, i),
				Message:  "unclosed block: missing ======= divider",
			})
			continue
		}

		// Collect replacement text until >>>>>>> REPLACE marker.
		var replaceLines []string
		foundReplace := false
		for i < len(lines) {
			if isMarker(lines[i], markerReplace) {
				foundReplace = true
				i++
				break
			}
			replaceLines = append(replaceLines, lines[i])
			i++
		}

		if !foundReplace {
			result.ParseErrors = append(result.ParseErrors, &ParseError{
				Position: searchIdx + 1,
				RawText:  reconstructBlock(lines, searchIdx, i),
				Message:  "unclosed block: missing >>>>>>> REPLACE marker",
			})
			continue
		}

		// Skip any trailing markdown fence (```) after the REPLACE marker.
		if i < len(lines) && isMarkdownFence(lines[i]) {
			i++
		}

		if filePath == "" {
			result.ParseErrors = append(result.ParseErrors, &ParseError{
				Position: searchIdx + 1,
				RawText:  reconstructBlock(lines, searchIdx, i),
				Message:  "missing file path before <<<<<<< SEARCH marker",
			})
			continue
		}

		// The block format does not include the final newline before each
		// marker, so every collected line gets its terminator back.
		search := joinLines(searchLines)
		replace := joinLines(replaceLines)

		edit := types.Edit{
			FilePath:   filePath,
			OldContent: search,
			NewContent: replace,
		}
		lastPath = filePath

		result.Edits = append(result.Edits, edit)
		result.BlocksParsed++
	}

	result.ReasoningText = strings.TrimSpace(reasoning.String())

	if result.BlocksFound == 0 {
		return nil, &NoEditsFoundError{}
	}

	return result, nil
}

// extractFilePath cleans a file path line, stripping markdown fences,
// backticks, and leading/trailing whitespace.
func extractFilePath(line string) string {
	s := strings.TrimSpace(line)

	// Strip markdown fence openers (``` or ```language).
	if isMarkdownFence(s) {
		return ""
	}

	// Strip inline backticks.
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)

	// If the line looks like reasoning text (contains spaces after stripping),
	// it is not a file path.
	if strings.ContainsAny(s, " \t") && !strings.Contains(s, "/") {
		return ""
	}

	return s
}

// isMarker checks if a line matches a marker, allowing leading/trailing whitespace.
func isMarker(line, marker string) bool {
	return strings.TrimSpace(line) == marker
}

// isMarkdownFence checks if a line is a markdown fence (``` with optional language).
func isMarkdownFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```")
}

// joinLines terminates every line with a newline; no lines yields "".
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// reconstructBlock joins lines from start to end for error reporting.
func reconstructBlock(lines []string, start, end int) string {
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// appendReasoning adds a line to the reasoning text builder.
func appendReasoning(b *strings.Builder, line string) {
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(line)
}
