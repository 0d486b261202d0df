/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// Package providers implements one function per LSP feature (§4.7),
// each reading the cached AST, parent map, symbol table, and pragma
// state the way `theRebelliousNerd-codenerd/internal/mangle/lsp.go`'s
// LSPServer reads its own document/definition/reference maps: document
// lookup, then an AST walk, then a typed result slice.
package providers

import (
	"fmt"
	"strings"

	"github.com/perltooling/perl-lsp/ast"
	"github.com/perltooling/perl-lsp/lsp"
	"github.com/perltooling/perl-lsp/position"
	"github.com/perltooling/perl-lsp/symbols"
)

/*
Hover finds the enclosing name-bearing node at pos and returns its
symbol kind, declaration location, and doc comment if any (§4.7).
*/
func Hover(root *ast.Node, cache *position.LineStartsCache, table *symbols.Table, pos lsp.Position) (*lsp.Hover, bool) {
	offset := lsp.ToOffset(cache, pos)
	path := ast.FindPath(root, offset)
	n := lsp.EnclosingNamed(path)
	if n == nil {
		return nil, false
	}

	name := lsp.SymbolName(n)
	if name == "" {
		return nil, false
	}

	sym, ok := table.LookupAtOffset(name, offset)
	var contents string
	if ok {
		contents = fmt.Sprintf("**%s** `%s`\n\ndeclared at byte %d", sym.Kind, sym.Name, sym.DeclarationSpan.Start)
		if doc := docCommentAbove(root, sym.DeclarationSpan.Start); doc != "" {
			contents += "\n\n" + doc
		}
	} else {
		contents = fmt.Sprintf("`%s`", name)
	}

	return &lsp.Hover{
		Contents: contents,
		Range:    lsp.ToRange(cache, n.Location.Start, n.Location.End),
	}, true
}

/*
docCommentAbove finds the closest doc comment whose span ends at or
before declStart, walking the whole tree once - acceptable since hover
is not on a hot loop (one request, one document).
*/
func docCommentAbove(root *ast.Node, declStart int) string {
	var best *ast.Comment
	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(n *ast.Node) bool {
		for i := range n.Comments {
			c := &n.Comments[i]
			if !c.IsDoc || c.Location.End > declStart {
				continue
			}
			if best == nil || c.Location.End > best.Location.End {
				best = c
			}
		}
		return true
	}})
	if best == nil {
		return ""
	}
	return strings.TrimSpace(best.Text)
}
