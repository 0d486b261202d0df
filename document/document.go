/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// Package document implements the rope-backed document store (§4.5):
// per-document content, version, generation counter, and lazily
// rebuilt AST/line-start caches, under the read-heavy/write-exclusive
// locking discipline of §5.
package document

import (
	"sync"

	"github.com/perltooling/perl-lsp/ast"
	"github.com/perltooling/perl-lsp/parser"
	"github.com/perltooling/perl-lsp/position"
)

/*
Edit is one LSP incremental change: replace the half-open
[StartLine,StartColumn)-[EndLine,EndColumn) range with NewText. Lines
and columns are 0-based, columns in UTF-16 code units (§4.4, §4.5).
*/
type Edit struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	NewText     string
}

/*
Document is one open text document. Grounded on the teacher's
varsScope (scope/varsscope.go): a single `*sync.RWMutex` guards every
mutable field, the same "writers take the lock exclusively, readers
share it" discipline scope chains use for shared variable storage,
generalized here to document content + derived caches instead of
variable bindings (§5 "Document state is shared; features are
read-heavy").
*/
type Document struct {
	mu sync.RWMutex

	uri        string
	rope       *Rope
	mirror     string
	version    int
	generation uint64

	lineCache *position.LineStartsCache

	astValid    bool
	ast         *ast.Node
	parseErrors []parser.ParseError
}

/*
NewDocument creates a Document for an `open(uri, text, version)`
request; generation starts at 0 (§4.5).
*/
func NewDocument(uri, text string, version int) *Document {
	return &Document{
		uri:       uri,
		rope:      NewRope(text),
		mirror:    text,
		version:   version,
		lineCache: position.NewLineStartsCache(text),
	}
}

func (d *Document) URI() string { return d.uri }

/*
Text returns the document's current mirror text.
*/
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mirror
}

func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

func (d *Document) Generation() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.generation
}

/*
LineCache returns a snapshot reference to the document's current
position cache. Safe to use lock-free afterward: a new cache replaces
this one wholesale on the next mutation rather than being mutated in
place (§4.5).
*/
func (d *Document) LineCache() *position.LineStartsCache {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lineCache
}

/*
ChangeFull implements `change_full`: replaces the rope wholesale,
invalidates the AST/line cache, and bumps the generation (§4.5).
*/
func (d *Document) ChangeFull(text string, version int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rope = NewRope(text)
	d.mirror = text
	d.lineCache = position.NewLineStartsCache(text)
	d.version = version
	d.generation++
	d.invalidateAST()
}

/*
ChangeIncremental implements `change_incremental`: applies each edit
in order (LSP range → rope byte offsets via the line cache → splice),
rebuilds the mirror string and line cache after each edit, invalidates
the AST, and bumps the generation exactly once (§4.5).

Edits within one batch are applied against the document state left by
the previous edit in the same batch (per the LSP incremental-sync
contract), so the line cache is refreshed between edits even though
the generation bump and outward-visible invalidation happen only once.
*/
func (d *Document) ChangeIncremental(edits []Edit, version int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range edits {
		start := d.lineCache.PositionToOffset(position.Position{Line: e.StartLine, Column: e.StartColumn})
		end := d.lineCache.PositionToOffset(position.Position{Line: e.EndLine, Column: e.EndColumn})

		d.rope = d.rope.Delete(start, end)
		d.rope = d.rope.Insert(start, e.NewText)
		d.mirror = d.rope.String()
		d.lineCache = position.NewLineStartsCache(d.mirror)
	}

	d.version = version
	d.generation++
	d.invalidateAST()
}

func (d *Document) invalidateAST() {
	d.astValid = false
	d.ast = nil
	d.parseErrors = nil
}

/*
AST returns the cached AST if one exists for the current generation,
parsing the mirror text on demand otherwise (§4.5 `ast(uri) → AST`).
*/
func (d *Document) AST() (*ast.Node, []parser.ParseError) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.astValid {
		return d.ast, d.parseErrors
	}

	root, errs := parser.Parse(d.mirror)
	d.ast = root
	d.parseErrors = errs
	d.astValid = true
	return root, errs
}
