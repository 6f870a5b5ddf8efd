// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

func TestHandleDirty_CleanRepo(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, DirtyCommit: true})
	require.NoError(t, err)

	// Clean repo: HandleDirty should be a no-op.
	require.NoError(t, repo.HandleDirty())

	// Commit count should still be 1 (only the initial commit).
	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandleDirty_CommitsDirtyFiles(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, DirtyCommit: true})
	require.NoError(t, err)

	// Create a dirty file.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirty.go"), []byte("package main\n"), 0o644))

	require.NoError(t, repo.HandleDirty())

	// Should now be clean.
	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.False(t, dirty)

	// Commit count should be 2.
	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// The dirty commit message should match the expected message.
	msg, err := repo.lastCommitMessage()
	require.NoError(t, err)
	assert.Equal(t, dirtyCommitMsg, msg)
}

func TestHandleDirty_ReturnsErrorWhenDisabled(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, DirtyCommit: false})
	require.NoError(t, err)

	// Create a dirty file.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirty.go"), []byte("package main\n"), 0o644))

	err = repo.HandleDirty()
	assert.ErrorIs(t, err, ErrDirtyWorkTree)
}

func TestAutoCommit_StagesAndCommits(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, AutoCommit: true})
	require.NoError(t, err)

	// Create files that a patch "modified".
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feature.go"), []byte("package main\n\nfunc Feature() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.go"), []byte("package main\n\nfunc Helper() {}\n"), 0o644))

	err = repo.AutoCommit(appliedTo("feature.go", "helper.go"), "")
	require.NoError(t, err)

	// Repo should be clean.
	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.False(t, dirty)

	// Commit message should contain the Edited-By trailer.
	msg, err := repo.lastCommitMessage()
	require.NoError(t, err)
	assert.Contains(t, msg, editedByTrailer)

	// Without a message the subject is derived from the files.
	assert.True(t, strings.HasPrefix(msg, "Edit 2 files\n"), msg)
	assert.Contains(t, msg, "- feature.go: exact")
	assert.Contains(t, msg, "- helper.go: exact")
}

func TestAutoCommit_OnlyStagesSpecifiedFiles(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, AutoCommit: true})
	require.NoError(t, err)

	// Create two files, but only commit one.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracked.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.go"), []byte("package main\n"), 0o644))

	err = repo.AutoCommit(appliedTo("tracked.go"), "Add tracked file")
	require.NoError(t, err)

	// Repo should still be dirty (untracked.go is not committed).
	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestAutoCommit_DisabledIsNoop(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, AutoCommit: false})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "feature.go"), []byte("package main\n"), 0o644))

	err = repo.AutoCommit(appliedTo("feature.go"), "Add feature")
	require.NoError(t, err)

	// Should still be dirty since AutoCommit is disabled.
	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.True(t, dirty)

	// Commit count should still be 1.
	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUndo_RevertsEditblockCommit(t *testing.T) {
	dir := initTestRepo(t)

	// Add a go-editblock commit.
	addFileAndCommit(t, dir, "feature.go", "package main\n\nfunc Feature() {}\n", "feat: add feature\n\n"+editedByTrailer)

	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	// Verify we have 2 commits.
	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Undo should succeed.
	require.NoError(t, repo.Undo())

	// Back to 1 commit.
	count, err = repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The feature file should still exist in the working tree (soft reset).
	_, err = os.Stat(filepath.Join(dir, "feature.go"))
	assert.NoError(t, err)
}

func TestUndo_RefusesForeignCommit(t *testing.T) {
	dir := initTestRepo(t)

	// The initial commit from initTestRepo doesn't have the trailer.
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	err = repo.Undo()
	assert.ErrorIs(t, err, ErrNotEditblockCommit)

	// Commit count should remain unchanged.
	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUndo_PreservesChangesInWorkTree(t *testing.T) {
	dir := initTestRepo(t)

	// Add a go-editblock commit that modifies main.go.
	addFileAndCommit(t, dir, "main.go", "package main\n\nfunc main() { /* modified */ }\n", "feat: modify main\n\n"+editedByTrailer)

	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	require.NoError(t, repo.Undo())

	// The modified content should still be in the working tree.
	content, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "modified")
}

func TestAutoCommit_IntegrationWithHandleDirty(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, AutoCommit: true, DirtyCommit: true})
	require.NoError(t, err)

	// Create a pre-existing dirty file.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.go"), []byte("package main\n"), 0o644))

	// HandleDirty commits the dirty file.
	require.NoError(t, repo.HandleDirty())

	// Now simulate a patch.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patched.go"), []byte("package main\n\nfunc Patched() {}\n"), 0o644))

	err = repo.AutoCommit(appliedTo("patched.go"), "Add patched function")
	require.NoError(t, err)

	// Should have 3 commits: initial, dirty save, patch commit.
	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Last commit should be ours.
	ours, err := repo.IsEditblockCommit()
	require.NoError(t, err)
	assert.True(t, ours)
}

func TestAutoCommit_AbsolutePaths(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, AutoCommit: true})
	require.NoError(t, err)

	abs := filepath.Join(dir, "pkg", "lib.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte("package pkg\n"), 0o644))

	require.NoError(t, repo.AutoCommit(appliedTo(abs), "Fix lib"))

	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.False(t, dirty)

	msg, err := repo.lastCommitMessage()
	require.NoError(t, err)
	assert.Contains(t, msg, "- pkg/lib.go: exact")
	assert.True(t, strings.HasPrefix(msg, "Fix lib\n"), msg)
}

func TestAutoCommit_RejectsPathOutsideRepo(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, AutoCommit: true})
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "other.go")
	err = repo.AutoCommit(appliedTo(outside), "Fix other")
	assert.ErrorContains(t, err, "outside the repository")
}

func TestAutoCommit_NoFilesIsNoop(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, AutoCommit: true})
	require.NoError(t, err)

	require.NoError(t, repo.AutoCommit(nil, "Nothing"))

	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUndo_RefusesInitialCommit(t *testing.T) {
	dir := t.TempDir()
	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644))
	_, err = wt.Add("a.go")
	require.NoError(t, err)
	require.NoError(t, commit(wt, "feat: root\n\n"+editedByTrailer))

	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Undo(), ErrInitialCommit)
}

func TestAutoCommit_GroupsEditsByFile(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir, AutoCommit: true})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() { run() }\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes\n"), 0o644))

	applied := []*types.ApplyResult{
		{FilePath: filepath.Join(dir, "main.go"), Stage: types.StageWhitespace, Similarity: 1},
		{FilePath: filepath.Join(dir, "notes.md"), Stage: types.StageAppend, Similarity: 1, Created: true},
		{FilePath: filepath.Join(dir, "main.go"), Stage: types.StageFuzzy, Similarity: 0.873},
	}
	require.NoError(t, repo.AutoCommit(applied, ""))

	msg, err := repo.lastCommitMessage()
	require.NoError(t, err)
	assert.Equal(t, "Edit 1 file, create 1\n\n"+
		"- main.go: whitespace, fuzzy 0.87\n"+
		"- notes.md: created\n\n"+editedByTrailer, msg)

	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.False(t, dirty)
}

// appliedTo returns exact-match results for paths.
func appliedTo(paths ...string) []*types.ApplyResult {
	out := make([]*types.ApplyResult, len(paths))
	for i, p := range paths {
		out[i] = &types.ApplyResult{FilePath: p, Stage: types.StageExact, Similarity: 1}
	}
	return out
}
