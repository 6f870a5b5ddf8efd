// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd008-git-integration R1, R2, R4;
//
//	docs/ARCHITECTURE § Git Integration.
package git

import (
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

const (
	authorName  = "go-editblock"
	authorEmail = "noreply@go-editblock"
)

// ErrInitialCommit is returned when undo would remove the root commit.
var ErrInitialCommit = errors.New("cannot undo the initial commit")

// HandleDirty saves uncommitted changes in a commit of their own so the
// patch commit holds only the patch. It returns ErrDirtyWorkTree instead
// when Config.DirtyCommit is false.
//
// Implements: prd008-git-integration R2.1-R2.5.
func (r *Repo) HandleDirty() error {
	dirty, err := r.IsDirty()
	if err != nil || !dirty {
		return err
	}
	if !r.cfg.DirtyCommit {
		return ErrDirtyWorkTree
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if _, err := wt.Add("."); err != nil {
		return fmt.Errorf("staging dirty files: %w", err)
	}
	if err := commit(wt, dirtyCommitMsg); err != nil {
		return fmt.Errorf("committing dirty files: %w", err)
	}
	return nil
}

// AutoCommit stages the files touched by applied and commits them. message
// overrides the generated subject; see generateMessage. Nothing happens
// when Config.AutoCommit is false or no edit was applied.
//
// Implements: prd008-git-integration R1.1-R1.5.
func (r *Repo) AutoCommit(applied []*types.ApplyResult, message string) error {
	if !r.cfg.AutoCommit || len(applied) == 0 {
		return nil
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	changes, err := groupByFile(applied, func(path string) (string, error) {
		return r.relPath(wt, path)
	})
	if err != nil {
		return err
	}

	// R1.5: Stage only the patched files.
	for _, c := range changes {
		if _, err := wt.Add(c.path); err != nil {
			return fmt.Errorf("staging %s: %w", c.path, err)
		}
	}

	if err := commit(wt, generateMessage(message, changes)); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Undo soft-resets HEAD to its parent if HEAD carries the Edited-By
// trailer. The patched content stays staged in the working tree.
//
// Implements: prd008-git-integration R4.1-R4.4.
func (r *Repo) Undo() error {
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	if !isEditblockMessage(head.Message) {
		return ErrNotEditblockCommit
	}
	if head.NumParents() == 0 {
		return ErrInitialCommit
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	err = wt.Reset(&gogit.ResetOptions{
		Commit: head.ParentHashes[0],
		Mode:   gogit.SoftReset,
	})
	if err != nil {
		return fmt.Errorf("resetting to parent: %w", err)
	}
	return nil
}

// commit records the staged changes as go-editblock.
func commit(wt *gogit.Worktree, msg string) error {
	_, err := wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: authorName, Email: authorEmail, When: time.Now()},
	})
	return err
}
