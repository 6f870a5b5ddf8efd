// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-patch-engine R1 (text normalization).
package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// prep ensures non-empty text ends with a newline and splits it into lines
// that keep their terminators, so strings.Join(lines, "") == text.
func prep(text string) (string, []string) {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text, splitLines(text)
}

// splitLines splits text after each newline. A final unterminated line is
// kept as is; empty text yields no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splice returns lines with the window [start, end) replaced by repl, joined.
func splice(lines []string, start, end int, repl []string) string {
	var b strings.Builder
	for _, l := range lines[:start] {
		b.WriteString(l)
	}
	for _, l := range repl {
		b.WriteString(l)
	}
	for _, l := range lines[end:] {
		b.WriteString(l)
	}
	return b.String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func trimLeading(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// leadingWidth is the number of runes of leading whitespace in s.
func leadingWidth(s string) int {
	return utf8.RuneCountInString(s[:len(s)-len(trimLeading(s))])
}

// dropRunes removes the first n runes of s.
func dropRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}
