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
	"testing"

	"github.com/perltooling/perl-lsp/parser"
)

func TestIndexUpdateAndRemove(t *testing.T) {
	idx, err := NewIndex(64)
	if err != nil {
		t.Fatal(err)
	}

	root, _ := parser.Parse("sub greet { }\n")
	idx.Update(Build(root, "file:///a.pl"))

	if locs := idx.Lookup("greet"); len(locs) != 1 {
		t.Fatalf("expected one indexed occurrence, got %d", len(locs))
	}

	idx.Remove("file:///a.pl")
	if locs := idx.Lookup("greet"); len(locs) != 0 {
		t.Fatalf("expected no occurrences after removal, got %d", len(locs))
	}
}

func TestIndexSearchIsOrderedAndCached(t *testing.T) {
	idx, err := NewIndex(64)
	if err != nil {
		t.Fatal(err)
	}

	root, _ := parser.Parse("sub zeta { }\nsub alpha { }\n")
	idx.Update(Build(root, "file:///a.pl"))

	results := idx.Search("")
	var names []string
	for _, s := range results {
		if s.Kind == KindSubroutine {
			names = append(names, s.Name)
		}
	}
	if len(names) < 2 || names[0] != "alpha" {
		t.Fatalf("expected alphabetically ordered subroutine names, got %v", names)
	}

	if cached := idx.Search(""); len(cached) != len(results) {
		t.Fatal("expected the cached search to return the same result set")
	}
}
