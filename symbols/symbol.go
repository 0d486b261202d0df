/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// Package symbols builds the per-document symbol table, the
// workspace-wide inverted symbol index, and the range-indexed pragma
// state that every LSP feature provider reads (§3, §9).
package symbols

import "github.com/perltooling/perl-lsp/ast"

/*
Kind distinguishes the declarations a Symbol can name.
*/
type Kind int

const (
	KindPackage Kind = iota
	KindSubroutine
	KindMethod
	KindVariable
	KindConstant
	KindClass
	KindRole
	KindImport
	KindExport
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindSubroutine:
		return "subroutine"
	case KindMethod:
		return "method"
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	case KindClass:
		return "class"
	case KindRole:
		return "role"
	case KindImport:
		return "import"
	case KindExport:
		return "export"
	}
	return "unknown"
}

/*
Symbol is a single named declaration: { kind, declaration_span,
scope_chain, documentation? } (§3).
*/
type Symbol struct {
	Name            string
	Kind            Kind
	DeclarationSpan ast.ByteSpan
	ScopeChain      []string
	Documentation   string
}

/*
Location names an occurrence of a symbol in a specific document, the
unit the workspace index and References/Definition providers exchange.
*/
type Location struct {
	URI  string
	Span ast.ByteSpan
}
