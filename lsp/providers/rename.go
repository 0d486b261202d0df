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
	"errors"

	"github.com/perltooling/perl-lsp/ast"
	"github.com/perltooling/perl-lsp/lsp"
	"github.com/perltooling/perl-lsp/position"
	"github.com/perltooling/perl-lsp/symbols"
)

var errNotRenamable = errors.New("symbol is not renamable")

/*
PrepareRename returns the symbol's text range if renaming is legal: not
a keyword, not a built-in function (§4.7).
*/
func PrepareRename(root *ast.Node, cache *position.LineStartsCache, pos lsp.Position) (lsp.Range, error) {
	offset := lsp.ToOffset(cache, pos)
	path := ast.FindPath(root, offset)
	n := lsp.EnclosingNamed(path)
	if n == nil {
		return lsp.Range{}, errNotRenamable
	}
	name := lsp.SymbolName(n)
	if name == "" {
		return lsp.Range{}, errNotRenamable
	}
	if n.Kind == ast.Bareword {
		if _, isBuiltin := builtinDoc[name]; isBuiltin {
			return lsp.Range{}, errNotRenamable
		}
	}
	return lsp.ToRange(cache, n.Location.Start, n.Location.End), nil
}

/*
Rename resolves the symbol at pos, enumerates its references in the
document (plus the workspace if the symbol is public), and returns a
WorkspaceEdit replacing each occurrence's identifier span with newName
(§4.7).
*/
func Rename(root *ast.Node, cache *position.LineStartsCache, table *symbols.Table, idx *symbols.Index, uri, newName string, pos lsp.Position, cacheFor CacheFor) (*lsp.WorkspaceEdit, error) {
	if _, err := PrepareRename(root, cache, pos); err != nil {
		return nil, err
	}

	locs := References(root, cache, table, idx, uri, pos, true, cacheFor)
	if len(locs) == 0 {
		return nil, errNotRenamable
	}

	edit := &lsp.WorkspaceEdit{Changes: make(map[string][]lsp.TextEdit)}
	for _, loc := range locs {
		edit.Changes[loc.URI] = append(edit.Changes[loc.URI], lsp.TextEdit{Range: loc.Range, NewText: newName})
	}
	return edit, nil
}
