// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package feedback turns failed edits into a report the author of the
// edits can act on: the closest lines found for each unmatched search, and
// what to change before retrying.
// Implements: prd009-retry-report R1, R2;
//
//	docs/ARCHITECTURE § Retry Report.
package feedback

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

const (
	defaultContextLines   = 3
	defaultMaxSegmentSize = 2048
)

// FormatConfig configures report formatting.
type FormatConfig struct {
	ContextLines   int // Lines of context above/below the closest match (default 3)
	MaxSegmentSize int // Maximum characters of a quoted segment (default 2048)
}

// FormatFailures produces a retry report for the failed edits of a batch in
// which applied edits succeeded. It returns "" when errs is empty.
//
// Implements: prd009-retry-report R1.1-R1.5.
func FormatFailures(errs []error, applied int, cfg FormatConfig) string {
	if len(errs) == 0 {
		return ""
	}
	contextLines := cfg.ContextLines
	if contextLines == 0 {
		contextLines = defaultContextLines
	}
	maxSegment := cfg.MaxSegmentSize
	if maxSegment == 0 {
		maxSegment = defaultMaxSegmentSize
	}

	var buf strings.Builder

	// R1.1: Preamble.
	fmt.Fprintf(&buf, "# %d of %d edits failed\n\n", len(errs), len(errs)+applied)

	for _, err := range errs {
		fmt.Fprintf(&buf, "## %v\n\n", err)

		var diag *types.Diagnostic
		var elision *types.ElisionError
		switch {
		case errors.As(err, &diag):
			// R1.2: Closest match with numbered context.
			if diag.ClosestMatch != "" {
				context := getCodeContext(diag.FilePath, diag.ClosestLineStart, diag.ClosestLineEnd, contextLines)
				if context != "" {
					buf.WriteString("Did you mean to match these lines?\n\n```\n")
					buf.WriteString(context)
					buf.WriteString("```\n\n")
				}
			}
			buf.WriteString("The search text must match the file exactly, including whitespace and indentation:\n")
			buf.WriteString("- check for extra or missing spaces\n")
			buf.WriteString("- copy the lines from the file instead of retyping them\n")
			buf.WriteString("- if using ... lines, make sure they stand in for omitted sections only\n\n")

		case errors.As(err, &elision):
			// R1.3: Elision problems.
			switch {
			case errors.Is(elision.Kind, types.ErrUnbalancedElision):
				buf.WriteString("Use the same number of ... lines in the search and replace text.\n\n")
			case errors.Is(elision.Kind, types.ErrMisalignedElision):
				buf.WriteString("Each ... line must be identical, including indentation, in the search and replace text.\n\n")
			case errors.Is(elision.Kind, types.ErrAmbiguousElisionSegment):
				if elision.Occurrences == 0 {
					buf.WriteString("This segment between ... lines was not found in the file:\n\n")
				} else {
					buf.WriteString("This segment between ... lines occurs more than once; add lines to make it unique:\n\n")
				}
				buf.WriteString("```\n")
				buf.WriteString(truncate(elision.Segment, maxSegment))
				buf.WriteString("```\n\n")
			}

		case errors.Is(err, types.ErrDocumentNotFound):
			// R1.4: Missing file.
			buf.WriteString("The file does not exist. Use an empty search section to create it.\n\n")
		}
	}

	// R1.5: Do not repeat successful edits.
	if applied > 0 {
		fmt.Fprintf(&buf, "The other %d edits were applied successfully. Do not repeat them.\n", applied)
	}

	return buf.String()
}

// getCodeContext reads a file and returns numbered lines from start to end
// (1-based, inclusive) with contextLines above and below. Lines of the
// range are marked with "> ".
//
// Implements: prd009-retry-report R2.1.
func getCodeContext(filePath string, startLine, endLine, contextLines int) string {
	data, err := os.ReadFile(filePath)
	if err != nil || startLine < 1 {
		return ""
	}
	if endLine < startLine {
		endLine = startLine
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	start := startLine - contextLines - 1 // Convert to 0-based
	if start < 0 {
		start = 0
	}
	end := endLine + contextLines // Already accounts for 0-based + context
	if end > len(lines) {
		end = len(lines)
	}

	var buf strings.Builder
	for i := start; i < end; i++ {
		lineNum := i + 1
		marker := "  "
		if lineNum >= startLine && lineNum <= endLine {
			marker = "> "
		}
		fmt.Fprintf(&buf, "%s%4d │ %s\n", marker, lineNum, lines[i])
	}

	return buf.String()
}

// truncate shortens s to at most limit characters, keeping a final newline.
func truncate(s string, limit int) string {
	if len(s) > limit {
		s = s[:limit] + "\n... (truncated)"
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
