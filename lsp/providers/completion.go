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
	"strings"

	"github.com/perltooling/perl-lsp/ast"
	"github.com/perltooling/perl-lsp/lsp"
	"github.com/perltooling/perl-lsp/position"
	"github.com/perltooling/perl-lsp/symbols"
)

/*
Completion computes the completion context at pos (method receiver vs.
bare expression start) and produces items from lexically visible
symbols, built-in functions, and (for a method receiver) the methods
known for the inferred receiver type (§4.7).
*/
func Completion(root *ast.Node, cache *position.LineStartsCache, table *symbols.Table, pos lsp.Position) []lsp.CompletionItem {
	offset := lsp.ToOffset(cache, pos)
	path := ast.FindPath(root, offset)

	if receiver := methodReceiver(path); receiver != "" {
		var items []lsp.CompletionItem
		for _, m := range MethodsForReceiver(receiver) {
			items = append(items, lsp.CompletionItem{Label: m, Kind: 2, Detail: "method"})
		}
		return items
	}

	var items []lsp.CompletionItem
	for _, sym := range table.All() {
		if sym.DeclarationSpan.Start > offset {
			continue
		}
		items = append(items, lsp.CompletionItem{
			Label:  sym.Name,
			Kind:   symbolCompletionKind(sym.Kind),
			Detail: sym.Kind.String(),
		})
	}

	names := make([]string, 0, len(builtinDoc))
	for name := range builtinDoc {
		names = append(names, name)
	}
	for _, name := range names {
		items = append(items, lsp.CompletionItem{Label: name, Kind: 3, Detail: "builtin", Documentation: builtinDoc[name]})
	}

	return items
}

func symbolCompletionKind(k symbols.Kind) int {
	switch k {
	case symbols.KindSubroutine, symbols.KindMethod:
		return 3
	case symbols.KindConstant:
		return 21
	case symbols.KindPackage, symbols.KindClass:
		return 9
	default:
		return 6
	}
}

/*
methodReceiver returns the textual variable name of the method-call
receiver if offset sits right after a `->`, empty otherwise.
*/
func methodReceiver(path []*ast.Node) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Kind == ast.MethodCall && len(path[i].Children) > 0 {
			recv := path[i].Children[0]
			if recv.Kind == ast.Variable {
				return strings.TrimPrefix(lsp.SymbolName(recv), "$")
			}
		}
	}
	return ""
}
