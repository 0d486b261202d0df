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
SelectionRange builds the expansion chain at pos by climbing FindPath
from the Program root down to the narrowest enclosing node, each node's
SelectionRange wrapping the previous one as its Parent, so the node
returned (the last one built, the innermost) sits at the top with
.Parent walking outward to the root - "expand selection" in an editor
follows .Parent one step at a time (§4.7).
*/
func SelectionRange(root *ast.Node, cache *position.LineStartsCache, pos lsp.Position) *lsp.SelectionRange {
	offset := lsp.ToOffset(cache, pos)
	path := ast.FindPath(root, offset)
	if len(path) == 0 {
		return nil
	}

	var chain *lsp.SelectionRange
	for _, n := range path {
		chain = &lsp.SelectionRange{Range: lsp.ToRange(cache, n.Location.Start, n.Location.End), Parent: chain}
	}
	return chain
}
