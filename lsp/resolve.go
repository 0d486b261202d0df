/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package lsp

import (
	"github.com/perltooling/perl-lsp/ast"
	"github.com/perltooling/perl-lsp/position"
)

/*
ToOffset converts an LSP Position into a byte offset using cache.
*/
func ToOffset(cache *position.LineStartsCache, pos Position) int {
	return cache.PositionToOffset(position.Position{Line: pos.Line, Column: pos.Character})
}

/*
EnclosingNamed climbs path (root-to-leaf, as returned by ast.FindPath)
to the closest name-bearing node: Variable, FunctionCall, MethodCall,
Use, No, Package, or Bareword (§4.7 "climb to the closest name-bearing
node").
*/
func EnclosingNamed(path []*ast.Node) *ast.Node {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i].Kind {
		case ast.Variable, ast.FunctionCall, ast.MethodCall, ast.Use, ast.No, ast.Package, ast.Bareword:
			return path[i]
		}
	}
	return nil
}

/*
SymbolName extracts the textual name a name-bearing node refers to, the
same dispatch `symbols.Build` uses to decide what to declare.
*/
func SymbolName(n *ast.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case ast.Variable:
		return string(n.Sigil) + n.Text
	case ast.Bareword:
		return n.Text
	case ast.FunctionCall, ast.MethodCall, ast.Use, ast.No, ast.Package:
		for _, c := range n.Children {
			if c.Kind == ast.Bareword {
				return c.Text
			}
		}
	}
	return ""
}

/*
EnclosingBlockKinds lists the AST kinds that introduce a child scope in
symbols.Build. No provider in this module reads it.
*/
var EnclosingBlockKinds = map[ast.Kind]bool{
	ast.Subroutine: true,
	ast.Block:      true,
}
