// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-patch-engine R3 (replacement driver);
//
//	docs/ARCHITECTURE § Patch Engine, Strategy Order.
package editor

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/petar-djukic/go-editblock/pkg/types"
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	FuzzyThreshold float64      // Minimum fuzzy similarity (default 0.8)
	WindowScale    float64      // Fuzzy window length tolerance (default 0.1)
	Scorer         Scorer       // Similarity function (default Ratio)
	Fence          Fence        // Snippet fence delimiters (default DefaultFence)
	Logger         *slog.Logger // Debug output (default discards)
}

// Engine locates a search snippet in a document and substitutes a
// replacement. It holds only configuration and is safe for concurrent use;
// callers serialize edits to the same document.
type Engine struct {
	threshold float64
	scale     float64
	score     Scorer
	fence     Fence
	log       *slog.Logger
}

// NewEngine returns an Engine with defaults filled in.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		threshold: opts.FuzzyThreshold,
		scale:     opts.WindowScale,
		score:     opts.Scorer,
		fence:     opts.Fence,
		log:       opts.Logger,
	}
	if e.threshold <= 0 {
		e.threshold = defaultFuzzyThreshold
	}
	if e.scale <= 0 {
		e.scale = defaultWindowScale
	}
	if e.score == nil {
		e.score = Ratio
	}
	if e.fence.Open == "" {
		e.fence.Open = DefaultFence.Open
	}
	if e.fence.Close == "" {
		e.fence.Close = DefaultFence.Close
	}
	if e.log == nil {
		e.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Document is the already-resolved target of an edit.
type Document struct {
	Name    string // Used for wrapper stripping and diagnostics only
	Content string // Current text (ignored when Exists is false)
	Exists  bool   // False if the document has not been created yet
}

// Result is the outcome of a successful Replace.
type Result struct {
	Content    string           // New document text
	Stage      types.MatchStage // Strategy that produced Content
	Similarity float64          // Fuzzy score, 1.0 otherwise
	Window     types.Window     // Matched lines of the original; zero for append and elision
	Created    bool             // Document did not exist and was created empty first
}

// Replace applies one search/replace pair to doc. Strategies run in a fixed
// order and the first success wins: append for a blank search, exact,
// whitespace-tolerant, both again without a spurious leading blank line,
// elision, and fuzzy. An invalid elision stops the search. When nothing
// matches the error is a *types.Diagnostic.
//
// Implements: prd001-patch-engine R3.1-R3.9.
func (e *Engine) Replace(doc Document, search, replace string) (*Result, error) {
	search = StripWrapping(search, doc.Name, e.fence)
	replace = StripWrapping(replace, doc.Name, e.fence)

	content := doc.Content
	created := false
	if !doc.Exists {
		if !isBlank(search) {
			return nil, fmt.Errorf("%w: %s", types.ErrDocumentNotFound, doc.Name)
		}
		content = ""
		created = true
	}

	if isBlank(search) {
		e.log.Debug("blank search, appending", "document", doc.Name, "created", created)
		return &Result{
			Content:    content + replace,
			Stage:      types.StageAppend,
			Similarity: 1.0,
			Created:    created,
		}, nil
	}

	res, err := e.replaceChunk(doc.Name, content, search, replace)
	if err != nil {
		return nil, err
	}
	res.Created = created
	return res, nil
}

// replaceChunk runs the matching strategies against non-blank search text.
func (e *Engine) replaceChunk(name, content, search, replace string) (*Result, error) {
	whole, wholeLines := prep(content)
	part, partLines := prep(search)
	replace, replaceLines := prep(replace)

	if m := perfectOrWhitespace(wholeLines, partLines, replaceLines); m != nil {
		return e.matched(name, m), nil
	}

	if len(partLines) > 2 && isBlank(partLines[0]) {
		e.log.Debug("retrying without leading blank line", "document", name)
		if m := perfectOrWhitespace(wholeLines, partLines[1:], replaceLines); m != nil {
			return e.matched(name, m), nil
		}
	}

	out, ok, err := elisionReplace(whole, part, replace)
	if err != nil {
		e.log.Debug("elision rejected", "document", name, "error", err)
		return nil, fmt.Errorf("applying elided edit to %s: %w", name, err)
	}
	if ok {
		e.log.Debug("matched", "document", name, "stage", types.StageElision)
		return &Result{Content: out, Stage: types.StageElision, Similarity: 1.0}, nil
	}

	if m := fuzzyMatch(wholeLines, part, partLines, replaceLines, e.score, e.threshold, e.scale); m != nil {
		return e.matched(name, m), nil
	}

	closest, sim, lineStart, lineEnd := findClosestMatch(wholeLines, part, partLines, e.score)
	e.log.Debug("no match", "document", name, "closest_similarity", sim)
	return nil, &types.Diagnostic{
		FilePath:         name,
		SearchText:       search,
		ClosestMatch:     closest,
		Similarity:       sim,
		ClosestLineStart: lineStart,
		ClosestLineEnd:   lineEnd,
	}
}

func (e *Engine) matched(name string, m *matchResult) *Result {
	e.log.Debug("matched", "document", name, "stage", m.stage,
		"start", m.window.Start, "end", m.window.End, "similarity", m.similarity)
	return &Result{
		Content:    m.content,
		Stage:      m.stage,
		Similarity: m.similarity,
		Window:     m.window,
	}
}
