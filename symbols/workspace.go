/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package symbols

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"devt.de/krotik/common/sortutil"
)

/*
Index is the workspace-wide symbol index: per-document Tables plus the
inverted name → []Location map (§3). Grounded on
`engine/taskqueue.go`'s `map[uint64]*sortutil.PriorityQueue` shape,
generalized from task ids to symbol names.
*/
type Index struct {
	mu       sync.RWMutex
	tables   map[string]*Table
	inverted map[string][]Location

	searchCache *lru.Cache[string, []*Symbol]
}

/*
NewIndex creates an empty workspace index with a bounded fuzzy-search
result cache.
*/
func NewIndex(searchCacheSize int) (*Index, error) {
	cache, err := lru.New[string, []*Symbol](searchCacheSize)
	if err != nil {
		return nil, err
	}
	return &Index{
		tables:      make(map[string]*Table),
		inverted:    make(map[string][]Location),
		searchCache: cache,
	}, nil
}

/*
Update replaces uri's Table, rebuilding its contribution to the
inverted index (§3 "Entries are replaced on didChange").
*/
func (idx *Index) Update(table *Table) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.removeLocked(table.URI)
	idx.tables[table.URI] = table

	for _, sym := range table.All() {
		idx.inverted[sym.Name] = append(idx.inverted[sym.Name], Location{
			URI:  table.URI,
			Span: sym.DeclarationSpan,
		})
	}
	idx.searchCache.Purge()
}

/*
Remove drops uri's Table and its inverted-index entries (§3 "removed on
didClose").
*/
func (idx *Index) Remove(uri string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(uri)
	idx.searchCache.Purge()
}

func (idx *Index) removeLocked(uri string) {
	if _, ok := idx.tables[uri]; !ok {
		return
	}
	delete(idx.tables, uri)

	for name, locs := range idx.inverted {
		kept := locs[:0]
		for _, l := range locs {
			if l.URI != uri {
				kept = append(kept, l)
			}
		}
		if len(kept) == 0 {
			delete(idx.inverted, name)
		} else {
			idx.inverted[name] = kept
		}
	}
}

/*
Lookup returns every indexed occurrence of name, used by
Definition/References to extend a resolution beyond the current
document.
*/
func (idx *Index) Lookup(name string) []Location {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]Location(nil), idx.inverted[name]...)
}

/*
Table returns the indexed Table for uri, if any.
*/
func (idx *Index) Table(uri string) (*Table, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	t, ok := idx.tables[uri]
	return t, ok
}

/*
Search answers `workspace/symbol` with a case-insensitive substring
match over every indexed symbol name, ordered deterministically via
`sortutil.InterfaceStrings` the way the teacher orders rule-engine keys
before printing them.
*/
func (idx *Index) Search(query string) []*Symbol {
	idx.mu.RLock()
	if cached, ok := idx.searchCache.Get(query); ok {
		idx.mu.RUnlock()
		return cached
	}

	var names []interface{}
	byName := make(map[string][]*Symbol)
	for _, t := range idx.tables {
		for _, sym := range t.All() {
			if query != "" && !strings.Contains(strings.ToLower(sym.Name), strings.ToLower(query)) {
				continue
			}
			if _, seen := byName[sym.Name]; !seen {
				names = append(names, sym.Name)
			}
			byName[sym.Name] = append(byName[sym.Name], sym)
		}
	}
	idx.mu.RUnlock()

	sortutil.InterfaceStrings(names)

	var out []*Symbol
	for _, n := range names {
		out = append(out, byName[n.(string)]...)
	}

	idx.mu.Lock()
	idx.searchCache.Add(query, out)
	idx.mu.Unlock()

	return out
}
