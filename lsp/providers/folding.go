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
FoldingRanges returns a foldable range for every Subroutine, Package,
and Block spanning more than one line (§4.7).
*/
func FoldingRanges(root *ast.Node, cache *position.LineStartsCache) []lsp.FoldingRange {
	var out []lsp.FoldingRange
	ast.Walk(root, ast.VisitorFunc{EnterFunc: func(n *ast.Node) bool {
		switch n.Kind {
		case ast.Subroutine, ast.Package, ast.Block:
			start := cache.OffsetToPosition(n.Location.Start)
			end := cache.OffsetToPosition(n.Location.End)
			if end.Line > start.Line {
				out = append(out, lsp.FoldingRange{StartLine: start.Line, EndLine: end.Line, Kind: "region"})
			}
		}
		return true
	}})
	return out
}
