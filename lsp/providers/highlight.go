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
DocumentHighlight returns every occurrence of the symbol at pos within
root, each tagged Read/Write based on whether it sits on the left-hand
or right-hand side of an Assignment (§4.7).
*/
func DocumentHighlight(root *ast.Node, cache *position.LineStartsCache, pos lsp.Position) []lsp.DocumentHighlight {
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

	writeTargets := make(map[int]bool)
	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(a *ast.Node) bool {
		if a.Kind == ast.Assignment && len(a.Children) > 0 {
			markWriteTargets(a.Children[0], writeTargets)
		}
		return true
	}})

	var out []lsp.DocumentHighlight
	for _, occ := range occurrences(root, name) {
		kind := lsp.HighlightRead
		if writeTargets[occ.Location.Start] {
			kind = lsp.HighlightWrite
		}
		if occ.Kind == ast.Bareword {
			kind = lsp.HighlightText
		}
		out = append(out, lsp.DocumentHighlight{
			Range: lsp.ToRange(cache, occ.Location.Start, occ.Location.End),
			Kind:  kind,
		})
	}
	return out
}

func markWriteTargets(n *ast.Node, targets map[int]bool) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Variable:
		targets[n.Location.Start] = true
	case ast.VariableDeclaration, ast.List:
		for _, c := range n.Children {
			markWriteTargets(c, targets)
		}
	}
}
