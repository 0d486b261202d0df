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
SignatureHelp finds the call enclosing pos, infers the active
parameter by counting commas at the call's argument depth, and returns
the parameter list from builtinDoc for a built-in (§4.7). A call to a
user subroutine, or to any other name missing from builtinDoc, gets no
signature help (nil).
*/
func SignatureHelp(root *ast.Node, cache *position.LineStartsCache, table *symbols.Table, pos lsp.Position) *lsp.SignatureHelp {
	offset := lsp.ToOffset(cache, pos)
	path := ast.FindPath(root, offset)

	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		if n.Kind != ast.FunctionCall && n.Kind != ast.MethodCall {
			continue
		}

		name, args := callNameAndArgs(n)
		if name == "" {
			return nil
		}

		sig, ok := signatureFor(name)
		if !ok {
			return nil
		}

		return &lsp.SignatureHelp{
			Signatures:      []lsp.SignatureInformation{sig},
			ActiveSignature: 0,
			ActiveParameter: activeParameter(args, offset),
		}
	}
	return nil
}

func callNameAndArgs(n *ast.Node) (string, *ast.Node) {
	if len(n.Children) == 0 {
		return "", nil
	}
	var name string
	switch n.Kind {
	case ast.FunctionCall:
		name = n.Children[0].Text
	case ast.MethodCall:
		if len(n.Children) > 1 {
			name = n.Children[1].Text
		}
	}
	var args *ast.Node
	if len(n.Children) > 1 {
		args = n.Children[len(n.Children)-1]
	}
	return name, args
}

func signatureFor(name string) (lsp.SignatureInformation, bool) {
	doc, ok := builtinDoc[name]
	if !ok {
		return lsp.SignatureInformation{}, false
	}

	// builtinDoc entries look like "push ARRAY, LIST — appends LIST to
	// ARRAY"; the parameter label is the text between the name and the
	// em dash.
	label := doc
	if idx := strings.Index(doc, " — "); idx >= 0 {
		label = doc[:idx]
	}

	paramList := strings.TrimSpace(strings.TrimPrefix(label, name))
	var params []lsp.ParameterInformation
	if paramList != "" {
		for _, p := range strings.Split(paramList, ",") {
			params = append(params, lsp.ParameterInformation{Label: strings.TrimSpace(p)})
		}
	}

	return lsp.SignatureInformation{Label: label, Parameters: params}, true
}

/*
activeParameter counts List children of args whose start offset falls
before offset, matching "counting commas at the call's depth" (§4.7).
*/
func activeParameter(args *ast.Node, offset int) int {
	if args == nil {
		return 0
	}
	if args.Kind != ast.List {
		if args.Location.Start <= offset {
			return 0
		}
		return 0
	}
	count := 0
	for _, c := range args.Children {
		if c.Location.Start <= offset {
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return count - 1
}
