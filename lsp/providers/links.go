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
	"github.com/perltooling/perl-lsp/workspace"
)

/*
DocumentLinks scans `use` statements and `require Module` calls (with a
bareword module name) and returns a deferred link per statement, data
carrying enough to resolve lazily (§4.7). Resolution itself (mapping
`Foo::Bar` to `lib/Foo/Bar.pm`) happens in ResolveDocumentLink via
workspace.ModuleLocator.
*/
func DocumentLinks(root *ast.Node, cache *position.LineStartsCache, baseURI string) []lsp.DocumentLink {
	var out []lsp.DocumentLink
	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(n *ast.Node) bool {
		var name string
		switch {
		case n.Kind == ast.Use:
			name = lsp.SymbolName(n)
		case n.Kind == ast.FunctionCall && len(n.Children) == 2 &&
			n.Children[0].Text == "require" && n.Children[1].Kind == ast.Bareword:
			name = n.Children[1].Text
		default:
			return true
		}
		if name == "" || name == "constant" || name == "strict" || name == "warnings" {
			return true
		}
		out = append(out, lsp.DocumentLink{
			Range: lsp.ToRange(cache, n.Location.Start, n.Location.End),
			Data:  lsp.DocumentLinkData{Type: "module", Name: name, BaseURI: baseURI},
		})
		return true
	}})
	return out
}

/*
ResolveDocumentLink maps a module name (`Foo::Bar`) to a candidate
file path under workspaceRoot via workspace.ModuleLocator and sets it
as the link's target. isOpen does not change the result: the target is
the same whether or not that document is open.
*/
func ResolveDocumentLink(link lsp.DocumentLink, workspaceRoot string, isOpen func(uri string) bool) lsp.DocumentLink {
	if link.Data.Type != "module" {
		return link
	}
	locator := &workspace.ModuleLocator{Root: workspaceRoot}
	path, err := locator.Resolve(link.Data.Name)
	if err != nil {
		return link
	}
	target := "file://" + path
	link.Target = target
	if isOpen != nil && isOpen(target) {
		return link
	}
	return link
}
