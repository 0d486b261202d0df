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
)

/*
DocumentSymbol produces a hierarchical tree: a block-form
`package NAME { ... }` contains the subroutines declared in its block,
and subroutines contain nested variables (§4.7). A statement-form
`package NAME;` has no children; the subroutines after it are listed
beside it at the same level.
*/
func DocumentSymbol(root *ast.Node, cache *position.LineStartsCache) []lsp.DocumentSymbol {
	return documentSymbolChildren(root, cache)
}

func documentSymbolChildren(n *ast.Node, cache *position.LineStartsCache) []lsp.DocumentSymbol {
	var out []lsp.DocumentSymbol
	for _, c := range n.Children {
		if sym, ok := toDocumentSymbol(c, cache); ok {
			out = append(out, sym)
		} else {
			out = append(out, documentSymbolChildren(c, cache)...)
		}
	}
	return out
}

func toDocumentSymbol(n *ast.Node, cache *position.LineStartsCache) (lsp.DocumentSymbol, bool) {
	var kind lsp.SymbolKind
	switch n.Kind {
	case ast.Package:
		kind = lsp.SKPackage
	case ast.Subroutine:
		kind = lsp.SKFunction
	case ast.VariableDeclaration:
		kind = lsp.SKVariable
	default:
		return lsp.DocumentSymbol{}, false
	}

	name := lsp.SymbolName(n)
	if name == "" && n.Kind == ast.VariableDeclaration {
		for _, c := range n.Children {
			if c.Kind == ast.Variable {
				name = lsp.SymbolName(c)
				break
			}
		}
	}
	if name == "" {
		return lsp.DocumentSymbol{}, false
	}

	rng := lsp.ToRange(cache, n.Location.Start, n.Location.End)
	sym := lsp.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          rng,
		SelectionRange: rng,
	}
	if n.Kind != ast.VariableDeclaration {
		sym.Children = documentSymbolChildren(n, cache)
	}
	return sym, true
}
