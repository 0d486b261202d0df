/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package providers

import (
	"github.com/perltooling/perl-lsp/ast"
	"github.com/perltooling/perl-lsp/lsp"
	"github.com/perltooling/perl-lsp/position"
	"github.com/perltooling/perl-lsp/symbols"
)

/*
occurrences finds every Variable/Bareword node in root textually naming
name, the shared scan behind References and Document Highlight.
*/
func occurrences(root *ast.Node, name string) []*ast.Node {
	var out []*ast.Node
	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(n *ast.Node) bool {
		if lsp.SymbolName(n) == name && (n.Kind == ast.Variable || n.Kind == ast.Bareword) {
			out = append(out, n)
		}
		return true
	}})
	return out
}

/*
References resolves the symbol at pos, then enumerates matching
occurrences in the current document; if the symbol is recorded in the
workspace index under another document too, those are enumerated as
well. includeDeclaration controls whether the declaration site itself
is included (§4.7).
*/
func References(root *ast.Node, cache *position.LineStartsCache, table *symbols.Table, idx *symbols.Index, uri string, pos lsp.Position, includeDeclaration bool, cacheFor CacheFor) []lsp.Location {
	offset := lsp.ToOffset(cache, pos)
	path := ast.FindPath(root, offset)
	n := lsp.EnclosingNamed(path)
	if n == nil {
		return nil
	}
	name := lsp.SymbolName(n)
	if name == "" {
		return nil
	}

	sym, hasDecl := table.LookupAtOffset(name, offset)

	var out []lsp.Location
	for _, occ := range occurrences(root, name) {
		if hasDecl && !includeDeclaration && occ.Location.Start == sym.DeclarationSpan.Start {
			continue
		}
		out = append(out, lsp.Location{URI: uri, Range: lsp.ToRange(cache, occ.Location.Start, occ.Location.End)})
	}

	for _, loc := range idx.Lookup(name) {
		if loc.URI == uri {
			continue
		}
		otherCache, ok := cacheFor(loc.URI)
		if !ok {
			continue
		}
		out = append(out, lsp.Location{URI: loc.URI, Range: lsp.ToRange(otherCache, loc.Span.Start, loc.Span.End)})
	}

	return out
}
