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

import "testing"

// §8.8: every delimiter choice over the same logical content produces
// an identical (pattern, modifiers) result.
func TestExtractQuoteLikeDelimiterEquivalence(t *testing.T) {
	cases := []string{"/p/i", "{p}i", "[p]i", "<p>i", "#p#i"}
	for _, src := range cases {
		result := ExtractQuoteLike(src, 0, 1)
		if len(result.Bodies) != 1 {
			t.Fatalf("%q: expected 1 body, got %d", src, len(result.Bodies))
		}
		body := result.Bodies[0]
		if !body.Terminated {
			t.Fatalf("%q: expected terminated body", src)
		}
		if pattern := src[body.Content.Start:body.Content.End]; pattern != "p" {
			t.Fatalf("%q: expected pattern %q, got %q", src, "p", pattern)
		}
		if result.Modifiers != "i" {
			t.Fatalf("%q: expected modifiers %q, got %q", src, "i", result.Modifiers)
		}
	}
}

// §8.9: escaped delimiters and nesting for paired delimiters.
func TestExtractQuoteLikeSubstitutionNestingAndModifiers(t *testing.T) {
	src := "{a{b}c}{x{y}z}"
	result := ExtractQuoteLike(src, 0, 2)
	if len(result.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(result.Bodies))
	}
	first := result.Bodies[0]
	second := result.Bodies[1]
	if !first.Terminated || !second.Terminated {
		t.Fatalf("expected both bodies terminated, got %+v %+v", first, second)
	}
	if got := src[first.Content.Start:first.Content.End]; got != "a{b}c" {
		t.Fatalf("expected first body %q, got %q", "a{b}c", got)
	}
	if got := src[second.Content.Start:second.Content.End]; got != "x{y}z" {
		t.Fatalf("expected second body %q, got %q", "x{y}z", got)
	}
	if result.Modifiers != "" {
		t.Fatalf("expected no modifiers, got %q", result.Modifiers)
	}
}

func TestExtractQuoteLikeEscapedDelimiterNotMistakenForCloser(t *testing.T) {
	src := "{a\\}b}{c}"
	result := ExtractQuoteLike(src, 0, 2)
	if len(result.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(result.Bodies))
	}
	first := result.Bodies[0]
	if !first.Terminated {
		t.Fatal("expected first body terminated")
	}
	if got := src[first.Content.Start:first.Content.End]; got != "a\\}b" {
		t.Fatalf("expected escaped closer preserved in body, got %q", got)
	}
	second := result.Bodies[1]
	if got := src[second.Content.Start:second.Content.End]; got != "c" {
		t.Fatalf("expected second body %q, got %q", "c", got)
	}
}

func TestExtractQuoteLikeNonPairedDelimiterSharedByBothBodies(t *testing.T) {
	// s/foo/bar/gi: non-paired delimiter, both bodies use '/'.
	src := "/foo/bar/gi"
	result := ExtractQuoteLike(src, 0, 2)
	if len(result.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(result.Bodies))
	}
	if got := src[result.Bodies[0].Content.Start:result.Bodies[0].Content.End]; got != "foo" {
		t.Fatalf("expected first body %q, got %q", "foo", got)
	}
	if got := src[result.Bodies[1].Content.Start:result.Bodies[1].Content.End]; got != "bar" {
		t.Fatalf("expected second body %q, got %q", "bar", got)
	}
	if result.Modifiers != "gi" {
		t.Fatalf("expected modifiers %q, got %q", "gi", result.Modifiers)
	}
}

func TestExtractQuoteLikeUnterminatedReportsNotTerminated(t *testing.T) {
	src := "{unterminated"
	result := ExtractQuoteLike(src, 0, 1)
	if len(result.Bodies) != 1 {
		t.Fatalf("expected 1 body, got %d", len(result.Bodies))
	}
	if result.Bodies[0].Terminated {
		t.Fatal("expected an unterminated body to report Terminated=false")
	}
}

func TestExtractQuoteLikeTruncatedInputNeverPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("ExtractQuoteLike panicked: %v", r)
		}
	}()
	ExtractQuoteLike("", 0, 1)
	ExtractQuoteLike("x", 5, 1)
	ExtractQuoteLike("{", 0, 2)
}
