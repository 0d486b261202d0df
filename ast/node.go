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

/*
Comment is auxiliary meta data attached to a node (POD, "#" comments,
doc comments immediately above a declaration).
*/
type Comment struct {
	Text     string
	Location ByteSpan
	IsDoc    bool // immediately precedes a declaration with no blank line between
}

/*
Node is a single AST node. Go has no closed sum types, so - as in the
teacher's ASTNode{Name, Token, Children} - one struct carries every
variant's fields; Kind selects which fields are meaningful. This keeps
the shape the teacher uses (tag + children + auxiliary value) instead
of ~40 separate struct types plus an interface, which would force
virtual dispatch the design notes (§9) explicitly steer away from.
*/
type Node struct {
	Kind     Kind
	Location ByteSpan
	Children []*Node
	Comments []Comment

	// Text carries the node's primary textual payload: identifier name,
	// operator symbol, literal text, bareword text, etc. Meaning is
	// Kind-dependent.
	Text string

	// Sigil carries the '$','@','%','&','*' sigil character for Variable
	// nodes (0 if not applicable).
	Sigil byte

	// Declarator carries "my"/"our"/"local"/"state" for
	// VariableDeclaration nodes.
	Declarator string

	// Interpolated is true for double-quoted/heredoc strings that allow
	// variable interpolation.
	Interpolated bool

	// QuoteKind carries the heredoc/quote-like quoting style:
	// "bare", "single", "double", "backtick".
	QuoteKind string

	// Indented is true for "<<~LABEL" heredocs.
	Indented bool

	// Modifiers carries regex/substitution/transliteration modifier
	// letters (e.g. "gi").
	Modifiers string

	// Segments carries heredoc content segments (one ByteSpan per
	// physical line, newline excluded) and is also used for
	// interpolated-string segment spans.
	Segments []ByteSpan

	// Terminated is false when a heredoc or quote-like body ran off the
	// end of input without finding its terminator/closing delimiter.
	Terminated bool

	// RawText carries the original source text an Error node replaced,
	// so editors can render it back (Error nodes are terminal).
	RawText string

	// Message carries a human-readable description for Error nodes.
	Message string
}

/*
NewNode creates a node of the given kind spanning the given range.
*/
func NewNode(kind Kind, span ByteSpan) *Node {
	return &Node{Kind: kind, Location: span}
}

/*
AddChild appends a child node; this node's span is left unchanged.
Nil children are ignored so callers can append conditionally without
branching.
*/
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

/*
IsTerminal returns true for leaf node kinds that never have children in
a well-formed tree (Error nodes are always terminal per §3).
*/
func (n *Node) IsTerminal() bool {
	switch n.Kind {
	case Error, Number, Bareword:
		return true
	}
	return false
}
