// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd004-file-applier R1, R2;
//
//	docs/ARCHITECTURE § Text Editor.
package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

// TextEditor applies search/replace edits to files on disk through an
// Engine. It implements the types.Applier interface.
type TextEditor struct {
	// Engine performs the matching. A default Engine is used if nil.
	Engine *Engine
	// DryRun computes the result without touching the file. Later edits to
	// the same path see the content of earlier ones.
	DryRun bool

	mu      sync.Mutex
	pending map[string]string // dry-run content by path
}

// Verify interface compliance at compile time.
var _ types.Applier = (*TextEditor)(nil)

// Apply reads the target file, runs the engine and writes the result
// atomically. A missing file is created when the search text is blank.
//
// Implements: prd004-file-applier R1.1-R1.4.
func (e *TextEditor) Apply(edit types.Edit) (*types.ApplyResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, err := e.load(edit.FilePath)
	if err != nil {
		return nil, err
	}

	res, err := e.engine().Replace(doc, edit.OldContent, edit.NewContent)
	if err != nil {
		return nil, err
	}

	if e.DryRun {
		if e.pending == nil {
			e.pending = make(map[string]string)
		}
		e.pending[edit.FilePath] = res.Content
	} else {
		if res.Created {
			dir := filepath.Dir(edit.FilePath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}
		if err := atomicWrite(edit.FilePath, []byte(res.Content)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", edit.FilePath, err)
		}
	}

	return &types.ApplyResult{
		FilePath:   edit.FilePath,
		Stage:      res.Stage,
		Similarity: res.Similarity,
		Created:    res.Created,
		Original:   doc.Content,
		Updated:    res.Content,
	}, nil
}

// load returns the document at path, preferring dry-run content of an
// earlier edit over the file on disk.
func (e *TextEditor) load(path string) (Document, error) {
	if content, ok := e.pending[path]; ok {
		return Document{Name: path, Content: content, Exists: true}, nil
	}
	doc := Document{Name: path}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		doc.Content = string(content)
		doc.Exists = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, nil
}

var defaultEngine = NewEngine(Options{})

func (e *TextEditor) engine() *Engine {
	if e.Engine != nil {
		return e.Engine
	}
	return defaultEngine
}

// atomicWrite writes data to a temp file in the same directory, then renames
// it to the target path. This prevents partial writes from corrupting files.
//
// Implements: prd004-file-applier R2.1.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	// Preserve original file permissions if the file exists.
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(dir, ".go-editblock-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
