// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd008-git-integration R3;
//
//	docs/ARCHITECTURE § Git Integration.
package git

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

const maxSubjectLength = 72

// fileChange collects the applied edits to one file.
type fileChange struct {
	path    string   // Slash-separated, relative to the worktree root
	created bool     // The first edit created the file
	edits   []string // One entry per edit, in order
}

// groupByFile merges applied edits into one fileChange per path, in
// first-seen order. rel maps an edit's path to its worktree-relative form.
func groupByFile(applied []*types.ApplyResult, rel func(string) (string, error)) ([]fileChange, error) {
	var changes []fileChange
	index := make(map[string]int)
	for _, a := range applied {
		path, err := rel(a.FilePath)
		if err != nil {
			return nil, fmt.Errorf("staging %s: %w", a.FilePath, err)
		}
		i, ok := index[path]
		if !ok {
			i = len(changes)
			index[path] = i
			changes = append(changes, fileChange{path: path, created: a.Created})
		}
		changes[i].edits = append(changes[i].edits, describeEdit(a))
	}
	return changes, nil
}

// describeEdit names how an edit was applied.
func describeEdit(a *types.ApplyResult) string {
	switch {
	case a.Created:
		return "created"
	case a.Stage == types.StageFuzzy:
		return fmt.Sprintf("fuzzy %.2f", a.Similarity)
	default:
		return a.Stage.String()
	}
}

// generateMessage builds the commit message for changes. The first line of
// message, if any, is the subject and its remaining lines open the body;
// otherwise the subject is derived from the files. The body lists every
// file with the match stage of each edit, followed by the Edited-By trailer.
//
// Implements: prd008-git-integration R3.1-R3.3.
func generateMessage(message string, changes []fileChange) string {
	subject, rest, _ := strings.Cut(strings.TrimSpace(message), "\n")
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = defaultSubject(changes)
	}

	var buf strings.Builder
	buf.WriteString(truncateSubject(subject))
	buf.WriteString("\n\n")
	if rest = strings.TrimSpace(rest); rest != "" {
		buf.WriteString(rest)
		buf.WriteString("\n\n")
	}
	for _, c := range changes {
		fmt.Fprintf(&buf, "- %s: %s\n", c.path, strings.Join(c.edits, ", "))
	}
	buf.WriteString("\n")
	buf.WriteString(editedByTrailer)
	return buf.String()
}

// defaultSubject summarizes changes, for example "Edit main.go" or
// "Edit 2 files, create 1".
func defaultSubject(changes []fileChange) string {
	created := 0
	for _, c := range changes {
		if c.created {
			created++
		}
	}
	edited := len(changes) - created

	switch {
	case len(changes) == 1 && created == 1:
		return "Create " + changes[0].path
	case len(changes) == 1:
		return "Edit " + changes[0].path
	case created == 0:
		return "Edit " + countFiles(edited)
	case edited == 0:
		return "Create " + countFiles(created)
	default:
		return fmt.Sprintf("Edit %s, create %d", countFiles(edited), created)
	}
}

func countFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

// truncateSubject shortens s to maxSubjectLength runes.
func truncateSubject(s string) string {
	r := []rune(s)
	if len(r) <= maxSubjectLength {
		return s
	}
	return string(r[:maxSubjectLength-3]) + "..."
}
