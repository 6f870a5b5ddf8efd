// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-block-format R3;
//
//	docs/ARCHITECTURE § Block Format.
package editformat

import (
	"fmt"
	"path/filepath"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

// RouteResult holds the outcome of applying all edits through the router.
type RouteResult struct {
	Applied []*types.ApplyResult // Successful edits
	Errors  []error              // Errors from failed edits (in order)
}

// Router applies edits in order through a single Applier, resolving
// relative file paths against WorkDir.
//
// Implements: prd005-block-format R3.1-R3.3.
type Router struct {
	Applier types.Applier // Applier for every edit
	WorkDir string        // Base for relative paths (empty = as given)
}

// ApplyAll applies each edit in order. Edits to the same file see the
// results of earlier ones. If one edit fails, the router continues with
// the remaining edits and collects all errors.
//
// Implements: prd005-block-format R3.2, R3.3.
func (r *Router) ApplyAll(edits []types.Edit) *RouteResult {
	result := &RouteResult{}

	for i, edit := range edits {
		edit.FilePath = r.resolve(edit.FilePath)
		ar, err := r.Applier.Apply(edit)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("edit %d (%s): %w", i+1, edit.FilePath, err))
			continue
		}
		result.Applied = append(result.Applied, ar)
	}

	return result
}

// ModifiedFiles returns the distinct paths of applied edits in first-seen order.
func (r *RouteResult) ModifiedFiles() []string {
	seen := make(map[string]bool, len(r.Applied))
	var files []string
	for _, a := range r.Applied {
		if !seen[a.FilePath] {
			seen[a.FilePath] = true
			files = append(files, a.FilePath)
		}
	}
	return files
}

// resolve joins relative paths onto WorkDir.
func (r *Router) resolve(path string) string {
	if r.WorkDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.WorkDir, path)
}
