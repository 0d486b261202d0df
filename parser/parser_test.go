/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"strings"
	"testing"

	"github.com/perltooling/perl-lsp/ast"
)

// §8.1: for any byte sequence of bounded length, parse terminates
// without panic.
func TestParseNeverPanicsOnArbitraryInput(t *testing.T) {
	inputs := []string{
		"",
		"\x00\x01\x02",
		"{{{{{{{{{{{{{{{{",
		"))))))))))))",
		"$$$$$$@@@@@%%%%%",
		"sub { sub { sub {",
		"'unterminated",
		`"unterminated`,
		"<<LABEL\nno terminator ever",
		"s{a{b{c",
		"my $x = \nif { print }",
		strings.Repeat("(", 5000),
		strings.Repeat("my $x = 1; ", 2000),
	}
	for _, src := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Parse(%q) panicked: %v", src, r)
				}
			}()
			root, _ := Parse(src)
			if root == nil {
				t.Fatalf("Parse(%q) returned a nil tree", src)
			}
		}()
	}
}

// §8.2: for input that parses successfully, every child span is
// contained in its parent; siblings are disjoint and ordered.
func TestParseSpanContainmentAndSiblingOrder(t *testing.T) {
	src := "my $x = 5;\nsub greet {\n    my $name = shift;\n    return \"hi $name\";\n}\nprint $x + greet();\n"
	root, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	var check func(n *ast.Node)
	check = func(n *ast.Node) {
		prevEnd := -1
		for _, c := range n.Children {
			if !n.Location.Contains(c.Location) {
				t.Fatalf("child %v span %v not contained in parent %v span %v", c.Kind, c.Location, n.Kind, n.Location)
			}
			if c.Location.Start < prevEnd {
				t.Fatalf("sibling %v starts at %d before previous sibling ended at %d (out of order)", c.Kind, c.Location.Start, prevEnd)
			}
			prevEnd = c.Location.End
			check(c)
		}
	}
	check(root)
}

// §8.3: the AST contains no cycles.
func TestParseProducesAcyclicTree(t *testing.T) {
	src := "my $x = 5;\nfor my $i (1..10) {\n    print $i if $i % 2;\n}\n"
	root, _ := Parse(src)

	visited := make(map[*ast.Node]bool)
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if visited[n] {
			t.Fatalf("cycle detected: node %v visited twice", n.Kind)
		}
		visited[n] = true
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
}

// §8.4: AST node count is O(input size); depth is O(input-nesting-depth)
// bounded by the recursion limit. Adversarial deep nesting must record
// a recursion-limit error rather than blow the Go call stack.
func TestParseBoundsRecursionDepth(t *testing.T) {
	src := strings.Repeat("(", 10000) + "1" + strings.Repeat(")", 10000) + ";"
	root, errs := Parse(src)
	if root == nil {
		t.Fatal("expected a non-nil tree even for adversarial nesting")
	}

	foundLimitError := false
	for _, e := range errs {
		if e.Kind == ErrRecursionLimit {
			foundLimitError = true
			break
		}
	}
	if !foundLimitError {
		t.Fatal("expected at least one ErrRecursionLimit error for 10000-deep nesting")
	}
}

func countNodes(n *ast.Node) int {
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	return count
}

func maxDepth(n *ast.Node) int {
	d := 0
	for _, c := range n.Children {
		if cd := maxDepth(c); cd > d {
			d = cd
		}
	}
	return d + 1
}

func TestParseNodeCountAndDepthAreBounded(t *testing.T) {
	src := strings.Repeat("my $x = 1;\n", 500)
	root, _ := Parse(src)

	n := countNodes(root)
	if n > 20*500+10 {
		t.Fatalf("node count %d grew far beyond linear in statement count", n)
	}

	d := maxDepth(root)
	if d > maxRecursionDepth+16 {
		t.Fatalf("tree depth %d exceeded the recursion limit plus slack", d)
	}
}

// §8.5 / S5: the parser recovers from lexical errors: injecting a
// single bad line between two valid lines still produces a Program
// with statements for both surrounding valid regions, and a ParseError
// list of size >= 1, without panicking.
func TestParseRecoversFromSingleBadLine(t *testing.T) {
	src := "my $x = \nif { print }"
	root, errs := Parse(src)
	if root.Kind != ast.Program {
		t.Fatalf("expected a Program root, got %v", root.Kind)
	}
	if len(root.Children) < 2 {
		t.Fatalf("expected at least 2 statements surrounding the bad line, got %d", len(root.Children))
	}
	if len(errs) < 1 {
		t.Fatal("expected at least one recovered ParseError")
	}
}

func TestParseRecoversAndProducesStatementsOnEitherSideOfBadLine(t *testing.T) {
	src := "my $good1 = 1;\n}}}garbage{{{\nmy $good2 = 2;\n"
	root, _ := Parse(src)
	if len(root.Children) < 2 {
		t.Fatalf("expected statements surrounding the bad line, got %d children", len(root.Children))
	}
}

// §8 S2: heredoc content is returned in FIFO declaration order when
// two heredocs share one declaring line (direct regression test for
// the FIFO bug the deferred resolveHeredocs fix resolves: a naive
// single-pass parser could hand B's body to A's node).
func TestParseHeredocFIFOOrderOnSharedDeclaringLine(t *testing.T) {
	src := "print(<<A, <<B);\nfirst\nA\nsecond\nB\n"
	root, errs := Parse(src)
	for _, e := range errs {
		if e.Kind == ErrUnterminatedHeredoc {
			t.Fatalf("unexpected unterminated heredoc error: %v", e)
		}
	}

	var heredocs []*ast.Node
	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(n *ast.Node) bool {
		if n.Kind == ast.Heredoc {
			heredocs = append(heredocs, n)
		}
		return true
	}})
	if len(heredocs) != 2 {
		t.Fatalf("expected 2 heredoc nodes, got %d", len(heredocs))
	}

	bodyOf := func(n *ast.Node) string {
		var b strings.Builder
		for _, seg := range n.Segments {
			b.WriteString(src[seg.Start:seg.End])
			b.WriteString("\n")
		}
		return b.String()
	}

	if got := bodyOf(heredocs[0]); got != "first\n" {
		t.Fatalf("expected first heredoc body %q, got %q", "first\n", got)
	}
	if got := bodyOf(heredocs[1]); got != "second\n" {
		t.Fatalf("expected second heredoc body %q, got %q", "second\n", got)
	}
	if !heredocs[0].Terminated || !heredocs[1].Terminated {
		t.Fatalf("expected both heredocs terminated, got %v %v", heredocs[0].Terminated, heredocs[1].Terminated)
	}
}

// §8 S3: slash disambiguation across its three forms.
func TestParseSlashDisambiguation(t *testing.T) {
	t.Run("division", func(t *testing.T) {
		root, errs := Parse("$x / 2;")
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		expr := firstExpr(t, root)
		if expr.Kind != ast.Binary || expr.Text != "/" {
			t.Fatalf("expected Binary(\"/\"), got %v %q", expr.Kind, expr.Text)
		}
		if expr.Children[1].Kind != ast.Number {
			t.Fatalf("expected a Number on the right, got %v", expr.Children[1].Kind)
		}
	})

	t.Run("match binding", func(t *testing.T) {
		root, errs := Parse("$x =~ /2/;")
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		expr := firstExpr(t, root)
		if expr.Kind != ast.Binary || expr.Text != "=~" {
			t.Fatalf("expected Binary(\"=~\"), got %v %q", expr.Kind, expr.Text)
		}
		if expr.Children[1].Kind != ast.Regex {
			t.Fatalf("expected a Regex on the right, got %v", expr.Children[1].Kind)
		}
	})

	t.Run("print regex", func(t *testing.T) {
		root, errs := Parse("print /foo/;")
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		call := firstExpr(t, root)
		if call.Kind != ast.FunctionCall {
			t.Fatalf("expected a FunctionCall, got %v", call.Kind)
		}
		args := call.Children[len(call.Children)-1]
		if args.Kind != ast.Regex {
			t.Fatalf("expected print's argument to parse as a Regex, got %v", args.Kind)
		}
	})
}

// Regression test for the hash-vs-block disambiguation bug: "map { ... }
// @list" must parse the brace as a bare block, not a hash literal.
func TestParseMapBlockIsNotMistakenForHashLiteral(t *testing.T) {
	root, errs := Parse("map { $_ * 2 } @list;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	call := firstExpr(t, root)
	if call.Kind != ast.FunctionCall {
		t.Fatalf("expected a FunctionCall, got %v", call.Kind)
	}
	if len(call.Children) < 2 || call.Children[1].Kind != ast.Block {
		t.Fatalf("expected map's first argument to be a Block, got %v", call.Children)
	}
}

// A genuine hash literal ("+{...}" or a key => value pair) must still
// parse as a HashLiteral, not a block, so the disambiguation heuristic
// doesn't overcorrect.
func TestParseHashLiteralStillRecognizedAsHash(t *testing.T) {
	root, errs := Parse("my $h = { a => 1, b => 2 };")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := firstExpr(t, root)
	var assign *ast.Node
	if decl.Kind == ast.Assignment {
		assign = decl
	} else {
		t.Fatalf("expected an Assignment, got %v", decl.Kind)
	}
	rhs := assign.Children[1]
	if rhs.Kind != ast.HashLiteral {
		t.Fatalf("expected a HashLiteral, got %v", rhs.Kind)
	}
}

// Regression test for the indirect-object scalar-then-term bug:
// "print $fh $x" must parse as an indirect call (filehandle $fh,
// argument $x), not as a single-argument call to print($fh).
func TestParsePrintToFilehandleIndirectCall(t *testing.T) {
	root, errs := Parse("print $fh $x;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	call := firstExpr(t, root)
	if call.Kind != ast.IndirectCall {
		t.Fatalf("expected an IndirectCall, got %v", call.Kind)
	}
	if len(call.Children) < 3 {
		t.Fatalf("expected name, filehandle, and argument children, got %d", len(call.Children))
	}
	if call.Children[1].Kind != ast.Variable || string(call.Children[1].Sigil)+call.Children[1].Text != "$fh" {
		t.Fatalf("expected the filehandle child to be $fh, got %v %q", call.Children[1].Kind, call.Children[1].Text)
	}
	if call.Children[2].Kind != ast.Variable || string(call.Children[2].Sigil)+call.Children[2].Text != "$x" {
		t.Fatalf("expected the argument child to be $x, got %v %q", call.Children[2].Kind, call.Children[2].Text)
	}
}

// "print $x;" with a single scalar argument must NOT be mistaken for
// an indirect call: there is no term following $x for it to hand off
// to, so this stays an ordinary one-argument call.
func TestParsePrintSingleScalarIsNotIndirectCall(t *testing.T) {
	root, errs := Parse("print $x;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	call := firstExpr(t, root)
	if call.Kind != ast.FunctionCall {
		t.Fatalf("expected an ordinary FunctionCall, got %v", call.Kind)
	}
}

// firstExpr unwraps the first top-level ExpressionStatement/Statement
// down to its inner expression, for concise assertions in small
// single-statement programs.
func firstExpr(t *testing.T, root *ast.Node) *ast.Node {
	t.Helper()
	if len(root.Children) == 0 {
		t.Fatal("expected at least one top-level statement")
	}
	n := root.Children[0]
	for n.Kind == ast.ExpressionStatement || n.Kind == ast.Statement {
		if len(n.Children) == 0 {
			t.Fatalf("expected %v to wrap an expression", n.Kind)
		}
		n = n.Children[0]
	}
	return n
}
