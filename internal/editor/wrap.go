// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-patch-engine R2 (wrapper stripping).
package editor

import (
	"path/filepath"
	"strings"
)

// Fence is the pair of delimiter prefixes that may wrap a snippet.
type Fence struct {
	Open  string
	Close string
}

// DefaultFence is the markdown code fence.
var DefaultFence = Fence{Open: "```", Close: "```"}

// StripWrapping removes an optional leading line echoing the file's base
// name and an optional pair of fence lines from a snippet. The result ends
// with exactly one newline unless it is empty. Empty input is returned as
// is, and a snippet with no wrapper only gains a missing final newline.
func StripWrapping(snippet, fileName string, fence Fence) string {
	if snippet == "" {
		return snippet
	}

	lines := strings.Split(strings.TrimSuffix(snippet, "\n"), "\n")

	if fileName != "" && len(lines) > 0 &&
		strings.HasSuffix(strings.TrimSpace(lines[0]), filepath.Base(fileName)) {
		lines = lines[1:]
	}

	if len(lines) > 0 && strings.HasPrefix(lines[0], fence.Open) &&
		strings.HasPrefix(lines[len(lines)-1], fence.Close) {
		if len(lines) < 2 {
			lines = nil
		} else {
			lines = lines[1 : len(lines)-1]
		}
	}

	result := strings.Join(lines, "\n")
	if result != "" && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result
}
