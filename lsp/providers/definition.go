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
CacheFor resolves the LineStartsCache for a workspace document by URI,
needed to turn another document's byte-offset spans into LSP Ranges;
implemented by the caller over a document.Store.
*/
type CacheFor func(uri string) (*position.LineStartsCache, bool)

/*
Definition resolves the symbol at pos, consulting the document's symbol
table first (lexical shadowing) and the workspace index second (§4.7).
*/
func Definition(root *ast.Node, cache *position.LineStartsCache, table *symbols.Table, idx *symbols.Index, uri string, pos lsp.Position, cacheFor CacheFor) []lsp.Location {
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

	if sym, ok := table.LookupAtOffset(name, offset); ok {
		return []lsp.Location{{
			URI:   uri,
			Range: lsp.ToRange(cache, sym.DeclarationSpan.Start, sym.DeclarationSpan.End),
		}}
	}

	var out []lsp.Location
	for _, loc := range idx.Lookup(name) {
		otherCache, ok := cacheFor(loc.URI)
		if !ok {
			continue
		}
		out = append(out, lsp.Location{
			URI:   loc.URI,
			Range: lsp.ToRange(otherCache, loc.Span.Start, loc.Span.End),
		})
	}
	return out
}
