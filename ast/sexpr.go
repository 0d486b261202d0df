/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import (
	"fmt"
	"strings"
)

/*
SExpr renders a node and its descendants as an indented S-expression,
e.g.:

	(Binary "+"
	  (Variable "$x")
	  (Number "1"))

This mirrors the teacher's prettyprinter.go in spirit (recursive,
indentation-driven) but renders a structural dump rather than
reconstituted source, which is what the spec asks of the AST layer.
*/
func SExpr(n *Node) string {
	var b strings.Builder
	writeSExpr(&b, n, 0)
	return b.String()
}

func writeSExpr(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		b.WriteString("nil")
		return
	}

	indent := strings.Repeat("  ", depth)
	b.WriteString("(")
	b.WriteString(n.Kind.String())

	if payload := sexprPayload(n); payload != "" {
		b.WriteString(" ")
		b.WriteString(payload)
	}

	for _, c := range n.Children {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString("  ")
		writeSExpr(b, c, depth+1)
	}

	b.WriteString(")")
}

func sexprPayload(n *Node) string {
	switch n.Kind {
	case Variable:
		return fmt.Sprintf("%q", string(n.Sigil)+n.Text)
	case Binary, Assignment:
		return fmt.Sprintf("%q", n.Text)
	case Unary:
		return fmt.Sprintf("%q", n.Text)
	case Number, String, Bareword, FunctionCall, MethodCall, Package,
		Subroutine, Use, No, HashKey:
		if n.Text != "" {
			return fmt.Sprintf("%q", n.Text)
		}
	case Regex, Substitution, Transliteration:
		return fmt.Sprintf("mods=%q", n.Modifiers)
	case Heredoc:
		return fmt.Sprintf("label=%q quote=%q indented=%v", n.Text, n.QuoteKind, n.Indented)
	case Error:
		return fmt.Sprintf("%q", n.Message)
	}
	return ""
}
