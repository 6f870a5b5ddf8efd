// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-public-interface R4;
//
//	docs/ARCHITECTURE § Public Interface.
package editblock

import (
	"fmt"

	"github.com/petar-djukic/go-editblock/internal/editor"
	"github.com/petar-djukic/go-editblock/pkg/types"
)

// Patcher applies search/replace patches to in-memory documents. It holds
// only configuration and may be shared between goroutines.
type Patcher struct {
	engine *editor.Engine
}

// New validates the config and returns a ready-to-use Patcher.
//
// Implements: prd006-public-interface R4.1-R4.3.
func New(cfg Config) (*Patcher, error) {
	opts, err := engineOptions(cfg)
	if err != nil {
		return nil, err
	}
	return &Patcher{engine: editor.NewEngine(opts)}, nil
}

// NewFileApplier returns an Applier that patches files on disk with the
// given config. With dryRun set the files are left untouched and the
// results carry the would-be content.
//
// Implements: prd006-public-interface R4.4.
func NewFileApplier(cfg Config, dryRun bool) (types.Applier, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &editor.TextEditor{Engine: p.engine, DryRun: dryRun}, nil
}

// Apply runs one search/replace pair against doc. A failure leaves doc
// unchanged and is a *Diagnostic, an *ElisionError or ErrDocumentNotFound.
func (p *Patcher) Apply(doc Document, search, replace string) (*Result, error) {
	return p.engine.Replace(doc, search, replace)
}

// ApplyPatch replaces search with replace in the existing document text and
// returns the new text.
//
// Implements: prd006-public-interface R2.1.
func (p *Patcher) ApplyPatch(name, text, search, replace string) (string, error) {
	res, err := p.Apply(Document{Name: name, Content: text, Exists: true}, search, replace)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// ApplyPatch is Patcher.ApplyPatch with the default Config.
func ApplyPatch(name, text, search, replace string) (string, error) {
	return defaultPatcher.ApplyPatch(name, text, search, replace)
}

var defaultPatcher = &Patcher{engine: editor.NewEngine(editor.Options{})}

// engineOptions validates cfg and converts it to engine options.
//
// Implements: prd006-public-interface R1.7-R1.9.
func engineOptions(cfg Config) (editor.Options, error) {
	if cfg.FuzzyThreshold < 0 || cfg.FuzzyThreshold > 1 {
		return editor.Options{}, fmt.Errorf("%w: FuzzyThreshold %v is outside (0,1]", ErrInvalidConfig, cfg.FuzzyThreshold)
	}
	if cfg.WindowScale < 0 || cfg.WindowScale >= 1 {
		return editor.Options{}, fmt.Errorf("%w: WindowScale %v is outside [0,1)", ErrInvalidConfig, cfg.WindowScale)
	}
	if (cfg.FenceOpen == "") != (cfg.FenceClose == "") {
		return editor.Options{}, fmt.Errorf("%w: FenceOpen and FenceClose must be set together", ErrInvalidConfig)
	}
	score, err := editor.ScorerByName(cfg.Scorer)
	if err != nil {
		return editor.Options{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return editor.Options{
		FuzzyThreshold: cfg.FuzzyThreshold,
		WindowScale:    cfg.WindowScale,
		Scorer:         score,
		Fence:          editor.Fence{Open: cfg.FenceOpen, Close: cfg.FenceClose},
		Logger:         cfg.Logger,
	}, nil
}
