// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd007-cli R2.1-R2.6.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/petar-djukic/go-editblock/internal/editformat"
	"github.com/petar-djukic/go-editblock/internal/feedback"
	"github.com/petar-djukic/go-editblock/pkg/editblock"
	"github.com/petar-djukic/go-editblock/pkg/types"
)

// newApplyCmd creates the "apply" command.
func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply one search/replace pair to a file",
		Long: "Apply replaces the search text with the replace text in FILE. " +
			"An empty search text appends to FILE, creating it if needed.",
		Args: cobra.ExactArgs(1),
		RunE: runApply,
	}

	cmd.Flags().StringP("search", "s", "", "Text to find")
	cmd.Flags().String("search-file", "", "Read the text to find from a file")
	cmd.Flags().StringP("replace", "r", "", "Replacement text")
	cmd.Flags().String("replace-file", "", "Read the replacement text from a file")
	cmd.Flags().Bool("dry-run", false, "Print a unified diff instead of writing")
	cmd.MarkFlagsMutuallyExclusive("search", "search-file")
	cmd.MarkFlagsMutuallyExclusive("replace", "replace-file")

	return cmd
}

// runApply applies a single edit given on the command line.
func runApply(cmd *cobra.Command, args []string) error {
	search, err := textFlag(cmd, "search")
	if err != nil {
		return err
	}
	replace, err := textFlag(cmd, "replace")
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	dir, err := workDir()
	if err != nil {
		return err
	}
	applier, err := editblock.NewFileApplier(patcherConfig(cmd), dryRun)
	if err != nil {
		return err
	}

	router := &editformat.Router{Applier: applier, WorkDir: dir}
	edits := []types.Edit{{FilePath: args[0], OldContent: search, NewContent: replace}}

	result, err := applyWithCommit(router, edits, dir, dryRun)
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), feedback.FormatFailures(result.Errors, 0, feedback.FormatConfig{}))
		return result.Errors[0]
	}

	if dryRun {
		return printDiffs(cmd.OutOrStdout(), dir, result.Applied)
	}
	return printJSON(cmd.OutOrStdout(), result.Applied[0])
}

// textFlag returns the value of --name, or the contents of --name-file.
func textFlag(cmd *cobra.Command, name string) (string, error) {
	path, _ := cmd.Flags().GetString(name + "-file")
	if path == "" {
		v, _ := cmd.Flags().GetString(name)
		return v, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading --%s-file: %w", name, err)
	}
	return string(data), nil
}

// printDiffs writes one unified diff per file, from its content before the
// first applied edit to its content after the last, with paths shown
// relative to dir.
func printDiffs(w io.Writer, dir string, applied []*types.ApplyResult) error {
	var order []string
	before := make(map[string]string)
	after := make(map[string]string)
	for _, a := range applied {
		if _, ok := before[a.FilePath]; !ok {
			order = append(order, a.FilePath)
			before[a.FilePath] = a.Original
		}
		after[a.FilePath] = a.Updated
	}

	for _, path := range order {
		name := path
		if rel, err := filepath.Rel(dir, path); err == nil {
			name = rel
		}
		diff, err := unifiedDiff(name, before[path], after[path])
		if err != nil {
			return fmt.Errorf("diffing %s: %w", name, err)
		}
		fmt.Fprint(w, diff)
	}
	return nil
}

// unifiedDiff renders the change from before to after as a unified diff.
func unifiedDiff(name, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + filepath.ToSlash(name),
		ToFile:   "b/" + filepath.ToSlash(name),
		Context:  3,
	})
}

// printJSON outputs v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// errEditsFailed reports that at least one edit of a batch failed.
var errEditsFailed = errors.New("some edits failed")
