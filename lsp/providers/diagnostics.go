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
	"fmt"

	"github.com/perltooling/perl-lsp/ast"
	"github.com/perltooling/perl-lsp/lsp"
	"github.com/perltooling/perl-lsp/parser"
	"github.com/perltooling/perl-lsp/position"
	"github.com/perltooling/perl-lsp/symbols"
)

/*
Diagnostics scans root for issues: unclosed constructs (from parse
errors), missing strict/warnings pragma, assignment-in-condition,
and unused variables (§4.7). Variable shadowing is not checked.
Best-effort: a check
that cannot conclude from local information is skipped rather than
guessed at.
*/
func Diagnostics(root *ast.Node, cache *position.LineStartsCache, parseErrs []parser.ParseError, table *symbols.Table) []lsp.Diagnostic {
	var out []lsp.Diagnostic

	for _, e := range parseErrs {
		out = append(out, lsp.Diagnostic{
			Range:    lsp.ToRange(cache, e.Span.Start, e.Span.End),
			Severity: lsp.SeverityError,
			Code:     e.Kind.String(),
			Source:   "perl-lsp",
			Message:  e.Message,
		})
	}

	if !hasPragma(root, "strict") {
		out = append(out, lsp.Diagnostic{
			Range:      lsp.ToRange(cache, root.Location.Start, root.Location.Start),
			Severity:   lsp.SeverityWarn,
			Code:       "missing-strict",
			Source:     "perl-lsp",
			Message:    "file does not enable `use strict`",
			Suggestion: "add `use strict;` near the top of the file",
		})
	}
	if !hasPragma(root, "warnings") {
		out = append(out, lsp.Diagnostic{
			Range:      lsp.ToRange(cache, root.Location.Start, root.Location.Start),
			Severity:   lsp.SeverityWarn,
			Code:       "missing-warnings",
			Source:     "perl-lsp",
			Message:    "file does not enable `use warnings`",
			Suggestion: "add `use warnings;` near the top of the file",
		})
	}

	out = append(out, assignmentInConditionDiagnostics(root, cache)...)
	out = append(out, unusedVariableDiagnostics(root, cache)...)

	return out
}

func hasPragma(root *ast.Node, name string) bool {
	found := false
	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(n *ast.Node) bool {
		if n.Kind == ast.Use && lsp.SymbolName(n) == name {
			found = true
		}
		return !found
	}})
	return found
}

func assignmentInConditionDiagnostics(root *ast.Node, cache *position.LineStartsCache) []lsp.Diagnostic {
	var out []lsp.Diagnostic
	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(n *ast.Node) bool {
		var cond *ast.Node
		switch n.Kind {
		case ast.If, ast.While:
			if len(n.Children) > 0 {
				cond = n.Children[0]
			}
		}
		if cond != nil && cond.Kind == ast.Assignment {
			out = append(out, lsp.Diagnostic{
				Range:      lsp.ToRange(cache, cond.Location.Start, cond.Location.End),
				Severity:   lsp.SeverityWarn,
				Code:       "assignment-in-condition",
				Source:     "perl-lsp",
				Message:    "found assignment where a boolean test was expected",
				Suggestion: "did you mean `==` instead of `=`?",
			})
		}
		return true
	}})
	return out
}

/*
unusedVariableDiagnostics flags `my` declarations whose name is never
read again in the same document - a conservative textual-name check,
not a full reaching-definitions analysis.
*/
func unusedVariableDiagnostics(root *ast.Node, cache *position.LineStartsCache) []lsp.Diagnostic {
	declCount := make(map[string]int)
	useCount := make(map[string]int)
	decls := make(map[string]*ast.Node)

	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(n *ast.Node) bool {
		if n.Kind == ast.Variable {
			name := lsp.SymbolName(n)
			if n.Declarator != "" {
				declCount[name]++
				decls[name] = n
			} else {
				useCount[name]++
			}
		}
		return true
	}})

	var out []lsp.Diagnostic
	for name, n := range decls {
		if declCount[name] == 1 && useCount[name] == 0 {
			out = append(out, lsp.Diagnostic{
				Range:      lsp.ToRange(cache, n.Location.Start, n.Location.End),
				Severity:   lsp.SeverityHint,
				Code:       "unused-variable",
				Source:     "perl-lsp",
				Message:    fmt.Sprintf("%s is declared but never used", name),
				Suggestion: "prefix with an underscore or remove the declaration",
			})
		}
	}
	return out
}
