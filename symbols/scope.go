/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package symbols

import (
	"sync"

	"github.com/perltooling/perl-lsp/ast"
)

/*
lexScope models one lexical scope (a subroutine body or a bare block),
generalized from `scope/varsscope.go`'s parent-chained variable scope:
NewChild/parent-chain lookup there becomes scope-chain lookup for `my`
declarations here, with the same "lock shared across the whole tree"
discipline.
*/
type lexScope struct {
	name     string
	span     ast.ByteSpan
	parent   *lexScope
	children []*lexScope
	symbols  map[string][]*Symbol
	lock     *sync.RWMutex
}

func newRootScope(name string, span ast.ByteSpan) *lexScope {
	return &lexScope{
		name:    name,
		span:    span,
		symbols: make(map[string][]*Symbol),
		lock:    &sync.RWMutex{},
	}
}

func (s *lexScope) newChild(name string, span ast.ByteSpan) *lexScope {
	s.lock.Lock()
	defer s.lock.Unlock()

	child := &lexScope{
		name:    name,
		span:    span,
		parent:  s,
		symbols: make(map[string][]*Symbol),
		lock:    s.lock,
	}
	s.children = append(s.children, child)
	return child
}

/*
chain returns the scope names from the root down to this scope,
recorded on each Symbol as ScopeChain.
*/
func (s *lexScope) chain() []string {
	if s.parent == nil {
		return []string{s.name}
	}
	return append(s.parent.chain(), s.name)
}

/*
declare records sym in this scope, keyed by name; declarations of the
same name accumulate in declaration order so shadowing lookups can pick
the innermost one whose span has already started at a given offset.
*/
func (s *lexScope) declare(sym *Symbol) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.symbols[sym.Name] = append(s.symbols[sym.Name], sym)
}

/*
lookup resolves name starting at this scope and climbing to parents,
returning the innermost declaration whose span starts at or before
offset (§3 "inner `my $x` binds uses inside its block").
*/
func (s *lexScope) lookup(name string, offset int) (*Symbol, bool) {
	s.lock.RLock()
	candidates := s.symbols[name]
	s.lock.RUnlock()

	var best *Symbol
	for _, c := range candidates {
		if c.DeclarationSpan.Start > offset {
			continue
		}
		if best == nil || c.DeclarationSpan.Start > best.DeclarationSpan.Start {
			best = c
		}
	}
	if best != nil {
		return best, true
	}
	if s.parent != nil {
		return s.parent.lookup(name, offset)
	}
	return nil, false
}

/*
scopeAt returns the innermost child scope whose span contains offset,
descending from s; s itself is returned if no child matches.
*/
func (s *lexScope) scopeAt(offset int) *lexScope {
	s.lock.RLock()
	children := s.children
	s.lock.RUnlock()

	for _, c := range children {
		if c.span.ContainsOffset(offset) {
			return c.scopeAt(offset)
		}
	}
	return s
}

/*
all collects every Symbol declared anywhere in this scope's subtree.
*/
func (s *lexScope) all() []*Symbol {
	s.lock.RLock()
	defer s.lock.RUnlock()

	var out []*Symbol
	for _, syms := range s.symbols {
		out = append(out, syms...)
	}
	for _, c := range s.children {
		out = append(out, c.all()...)
	}
	return out
}
