// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd007-cli R3.1-R3.5.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/go-editblock/internal/editformat"
	"github.com/petar-djukic/go-editblock/internal/feedback"
	"github.com/petar-djukic/go-editblock/pkg/editblock"
)

// blocksSummary is the JSON report printed by the "blocks" command.
type blocksSummary struct {
	Applied     int                `json:"applied"`
	Files       []string           `json:"files"`
	Errors      []string           `json:"errors,omitempty"`
	ParseErrors []string           `json:"parse_errors,omitempty"`
	Edits       []editSummaryEntry `json:"edits"`
}

type editSummaryEntry struct {
	File       string  `json:"file"`
	Stage      string  `json:"stage"`
	Similarity float64 `json:"similarity"`
	Created    bool    `json:"created,omitempty"`
}

// newBlocksCmd creates the "blocks" command.
func newBlocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks [FILE|-]",
		Short: "Apply SEARCH/REPLACE blocks from a response",
		Long: "Blocks parses SEARCH/REPLACE blocks, each preceded by a file path line, " +
			"from FILE or standard input and applies them in order. Failed edits are " +
			"reported and do not stop the remaining ones.",
		Args: cobra.MaximumNArgs(1),
		RunE: runBlocks,
	}

	cmd.Flags().Bool("dry-run", false, "Print unified diffs instead of writing")

	return cmd
}

// runBlocks parses and applies every block of the input.
func runBlocks(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	parsed, err := editformat.Parse(input)
	if err != nil {
		return fmt.Errorf("parsing blocks: %w", err)
	}

	dir, err := workDir()
	if err != nil {
		return err
	}
	applier, err := editblock.NewFileApplier(patcherConfig(cmd), dryRun)
	if err != nil {
		return err
	}

	router := &editformat.Router{Applier: applier, WorkDir: dir}
	result, err := applyWithCommit(router, parsed.Edits, dir, dryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		if err := printDiffs(out, dir, result.Applied); err != nil {
			return err
		}
	} else {
		summary := blocksSummary{Applied: len(result.Applied), Files: result.ModifiedFiles()}
		for _, a := range result.Applied {
			summary.Edits = append(summary.Edits, editSummaryEntry{
				File:       a.FilePath,
				Stage:      a.Stage.String(),
				Similarity: a.Similarity,
				Created:    a.Created,
			})
		}
		for _, e := range result.Errors {
			summary.Errors = append(summary.Errors, e.Error())
		}
		for _, e := range parsed.ParseErrors {
			summary.ParseErrors = append(summary.ParseErrors, e.Error())
		}
		if err := printJSON(out, summary); err != nil {
			return err
		}
	}

	if len(result.Errors) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), feedback.FormatFailures(result.Errors, len(result.Applied), feedback.FormatConfig{}))
		return fmt.Errorf("%w: %d of %d", errEditsFailed, len(result.Errors), len(parsed.Edits))
	}
	return nil
}

// readInput reads the response from the named file, or stdin for "-" or
// no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
