// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd007-cli R4.1-R4.4.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-editblock/internal/editformat"
	gitpkg "github.com/petar-djukic/go-editblock/internal/git"
	"github.com/petar-djukic/go-editblock/pkg/types"
)

// applyWithCommit routes edits and, when --commit is set and this is not a
// dry run, saves uncommitted changes first and commits the patched files
// afterwards.
func applyWithCommit(router *editformat.Router, edits []types.Edit, dir string, dryRun bool) (*editformat.RouteResult, error) {
	if !viper.GetBool("commit") || dryRun {
		return router.ApplyAll(edits), nil
	}

	repo, err := gitpkg.Open(gitpkg.Config{WorkDir: dir, AutoCommit: true, DirtyCommit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	if err := repo.HandleDirty(); err != nil {
		return nil, fmt.Errorf("saving uncommitted changes: %w", err)
	}

	result := router.ApplyAll(edits)
	if err := repo.AutoCommit(result.Applied, viper.GetString("message")); err != nil {
		return result, fmt.Errorf("committing edits: %w", err)
	}
	return result, nil
}

// newUndoCmd creates the "undo" command.
func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last go-editblock commit",
		Long:  "Undo performs a soft reset of the last commit if it was made by go-editblock.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workDir()
			if err != nil {
				return err
			}

			repo, err := gitpkg.Open(gitpkg.Config{WorkDir: dir})
			if err != nil {
				return fmt.Errorf("opening repository: %w", err)
			}

			if err := repo.Undo(); err != nil {
				return fmt.Errorf("undo failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Successfully reverted last go-editblock commit.")
			return nil
		},
	}
}
