/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package document

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/perltooling/perl-lsp/ast"
	"github.com/perltooling/perl-lsp/parser"
)

/*
cachedAST pairs a parsed AST with its parse errors, so a single LRU
entry captures everything a reader needs without reparsing.
*/
type cachedAST struct {
	root *ast.Node
	errs []parser.ParseError
}

/*
Store is the workspace's open-document table. Grounded on
`scope/varsscope.go`'s shared-lock-across-tree discipline generalized
from a single scope chain to a flat map of documents, plus
`github.com/hashicorp/golang-lru/v2` for bounded reuse of parsed ASTs
across repeated feature requests at the same generation (§4.5, §9
Open Question: "no subtree diffing, full reparse per change, AST cache
still reuses a clean parse at the same generation").
*/
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document

	astCache *lru.Cache[string, cachedAST]
}

/*
NewStore creates an empty document store with an AST cache bounded to
cacheSize entries.
*/
func NewStore(cacheSize int) (*Store, error) {
	cache, err := lru.New[string, cachedAST](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "document: creating AST cache")
	}
	return &Store{docs: make(map[string]*Document), astCache: cache}, nil
}

func cacheKey(uri string, generation uint64) string {
	return fmt.Sprintf("%s@%d", uri, generation)
}

/*
Open implements `open(uri, text, version)` (§4.5).
*/
func (s *Store) Open(uri, text string, version int) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := NewDocument(uri, text, version)
	s.docs[uri] = d
	return d
}

/*
Get returns the open document for uri, if any.
*/
func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[uri]
	return d, ok
}

/*
ChangeFull implements `change_full` on the document identified by uri.
*/
func (s *Store) ChangeFull(uri, text string, version int) error {
	d, ok := s.Get(uri)
	if !ok {
		return errors.Errorf("document not open: %s", uri)
	}
	d.ChangeFull(text, version)
	return nil
}

/*
ChangeIncremental implements `change_incremental` on the document
identified by uri.
*/
func (s *Store) ChangeIncremental(uri string, edits []Edit, version int) error {
	d, ok := s.Get(uri)
	if !ok {
		return errors.Errorf("document not open: %s", uri)
	}
	d.ChangeIncremental(edits, version)
	return nil
}

/*
Close implements `close(uri)`: removes the document entry (§4.5).
Stale cache entries for prior generations of this uri are left for the
LRU to evict naturally rather than scanned for and purged eagerly —
the workspace index, not the AST cache, is the structure §4.5 requires
to drop its entry on close.
*/
func (s *Store) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

/*
AST returns the parsed tree and parse errors for uri, reusing the
cached parse for the document's current generation when present
(§4.5 `ast(uri) → AST`).
*/
func (s *Store) AST(uri string) (*ast.Node, []parser.ParseError, error) {
	d, ok := s.Get(uri)
	if !ok {
		return nil, nil, errors.Errorf("document not open: %s", uri)
	}

	key := cacheKey(uri, d.Generation())
	if cached, ok := s.astCache.Get(key); ok {
		return cached.root, cached.errs, nil
	}

	root, errs := d.AST()
	s.astCache.Add(key, cachedAST{root: root, errs: errs})
	return root, errs, nil
}

/*
URIs returns every currently open document URI, used by the workspace
index to enumerate documents for cross-file requests (§4.7 "References
... enumerate across indexed documents").
*/
func (s *Store) URIs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	return uris
}
