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
)

/*
CodeActions produces one quick fix per fixable diagnostic overlapping
rng: `missing-strict`/`missing-warnings` insert the pragma near the top
of the file, `assignment-in-condition` changes `=` to `==` (§4.7).
Diagnostics with no known fix are left without a corresponding action,
same "best-effort, skip what can't be concluded" policy as Diagnostics
itself.
*/
func CodeActions(root *ast.Node, cache *position.LineStartsCache, uri string, rng lsp.Range, diags []lsp.Diagnostic) []lsp.CodeAction {
	var out []lsp.CodeAction

	for _, d := range diags {
		if !rangesOverlap(d.Range, rng) {
			continue
		}
		switch d.Code {
		case "missing-strict":
			out = append(out, lsp.CodeAction{
				Title: "Add `use strict;`",
				Kind:  "quickfix",
				Diagnostics: []lsp.Diagnostic{d},
				Edit: &lsp.WorkspaceEdit{Changes: map[string][]lsp.TextEdit{
					uri: {{Range: lsp.Range{Start: lsp.Position{Line: 0}, End: lsp.Position{Line: 0}}, NewText: "use strict;\n"}},
				}},
			})
		case "missing-warnings":
			out = append(out, lsp.CodeAction{
				Title: "Add `use warnings;`",
				Kind:  "quickfix",
				Diagnostics: []lsp.Diagnostic{d},
				Edit: &lsp.WorkspaceEdit{Changes: map[string][]lsp.TextEdit{
					uri: {{Range: lsp.Range{Start: lsp.Position{Line: 0}, End: lsp.Position{Line: 0}}, NewText: "use warnings;\n"}},
				}},
			})
		case "assignment-in-condition":
			out = append(out, lsp.CodeAction{
				Title: "Change `=` to `==`",
				Kind:  "quickfix",
				Diagnostics: []lsp.Diagnostic{d},
				Edit:  &lsp.WorkspaceEdit{Changes: map[string][]lsp.TextEdit{uri: equalsFix(root, cache, d.Range)}},
			})
		}
	}

	return out
}

func rangesOverlap(a, b lsp.Range) bool {
	if a.End.Line < b.Start.Line || (a.End.Line == b.Start.Line && a.End.Character < b.Start.Character) {
		return false
	}
	if b.End.Line < a.Start.Line || (b.End.Line == a.Start.Line && b.End.Character < a.Start.Character) {
		return false
	}
	return true
}

/*
equalsFix finds the Assignment node at the diagnostic's range and
replaces its operator span with "==". The operator's own span isn't
separately recorded, so the fix targets the single "=" character
immediately after the left-hand side.
*/
func equalsFix(root *ast.Node, cache *position.LineStartsCache, rng lsp.Range) []lsp.TextEdit {
	start := lsp.ToOffset(cache, rng.Start)
	var target *ast.Node
	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(n *ast.Node) bool {
		if n.Kind == ast.Assignment && n.Location.Start == start {
			target = n
		}
		return target == nil
	}})
	if target == nil || len(target.Children) == 0 {
		return nil
	}
	opStart := target.Children[0].Location.End
	opPos := cache.OffsetToPosition(opStart)
	return []lsp.TextEdit{{
		Range:   lsp.Range{Start: lsp.Position{Line: opPos.Line, Character: opPos.Column}, End: lsp.Position{Line: opPos.Line, Character: opPos.Column + 1}},
		NewText: "==",
	}}
}
