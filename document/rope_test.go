/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package document

import (
	"strings"
	"testing"
)

func TestRopeStringRoundTrip(t *testing.T) {
	src := strings.Repeat("line of perl;\n", 500)
	r := NewRope(src)
	if r.String() != src {
		t.Fatal("rope did not round-trip its source text")
	}
	if r.Len() != len(src) {
		t.Fatalf("expected length %d, got %d", len(src), r.Len())
	}
}

func TestRopeInsert(t *testing.T) {
	r := NewRope("my $x = 1;")
	r = r.Insert(9, "2")
	if r.String() != "my $x = 12;" {
		t.Fatalf("unexpected result: %q", r.String())
	}
}

func TestRopeDelete(t *testing.T) {
	r := NewRope("my $x = 12;")
	r = r.Delete(9, 10)
	if r.String() != "my $x = 1;" {
		t.Fatalf("unexpected result: %q", r.String())
	}
}

func TestRopeSlice(t *testing.T) {
	r := NewRope("package Foo;\nsub bar { }\n")
	if got := r.Slice(0, 7); got != "package" {
		t.Fatalf("unexpected slice: %q", got)
	}
}

func TestRopeInsertAtBoundaries(t *testing.T) {
	r := NewRope("abc")
	r = r.Insert(0, "X")
	if r.String() != "Xabc" {
		t.Fatalf("prepend failed: %q", r.String())
	}
	r = r.Insert(r.Len(), "Y")
	if r.String() != "XabcY" {
		t.Fatalf("append failed: %q", r.String())
	}
}
