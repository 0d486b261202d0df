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

import "testing"

// §8.2: span containment is reflexive and respects the half-open range.
func TestByteSpanContainsOffset(t *testing.T) {
	s := ByteSpan{Start: 5, End: 10}
	cases := []struct {
		offset int
		want   bool
	}{
		{4, false},
		{5, true},
		{9, true},
		{10, false}, // half-open: End itself is not contained
		{11, false},
	}
	for _, c := range cases {
		if got := s.ContainsOffset(c.offset); got != c.want {
			t.Errorf("ContainsOffset(%d) = %v, want %v", c.offset, got, c.want)
		}
	}
}

func TestByteSpanContains(t *testing.T) {
	outer := ByteSpan{Start: 0, End: 20}
	inner := ByteSpan{Start: 5, End: 10}
	if !outer.Contains(inner) {
		t.Fatal("expected outer to contain inner")
	}
	if outer.Contains(ByteSpan{Start: 0, End: 20}) == false {
		t.Fatal("expected a span to contain an identical span")
	}
	if inner.Contains(outer) {
		t.Fatal("expected inner to not contain the larger outer span")
	}
	if outer.Contains(ByteSpan{Start: 19, End: 21}) {
		t.Fatal("expected a span that partially overflows the end to not be contained")
	}
}

func TestByteSpanEmpty(t *testing.T) {
	if !(ByteSpan{Start: 3, End: 3}).Empty() {
		t.Fatal("expected a zero-width span to be empty")
	}
	if (ByteSpan{Start: 3, End: 4}).Empty() {
		t.Fatal("expected a one-byte span to not be empty")
	}
	if !(ByteSpan{Start: 5, End: 3}).Empty() {
		t.Fatal("expected an inverted span to be reported empty")
	}
}

func TestByteSpanUnion(t *testing.T) {
	a := ByteSpan{Start: 5, End: 10}
	b := ByteSpan{Start: 8, End: 20}
	want := ByteSpan{Start: 5, End: 20}
	if got := a.Union(b); got != want {
		t.Fatalf("a.Union(b) = %v, want %v", got, want)
	}
	if got := b.Union(a); got != want {
		t.Fatalf("b.Union(a) = %v, want %v", got, want)
	}

	disjoint := ByteSpan{Start: 100, End: 110}
	want2 := ByteSpan{Start: 5, End: 110}
	if got := a.Union(disjoint); got != want2 {
		t.Fatalf("a.Union(disjoint) = %v, want %v", got, want2)
	}
}

func TestByteSpanString(t *testing.T) {
	if got := (ByteSpan{Start: 3, End: 7}).String(); got != "[3,7)" {
		t.Fatalf("String() = %q, want %q", got, "[3,7)")
	}
}
