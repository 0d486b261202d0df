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

func spanText(src string, start, end int) string {
	return src[start:end]
}

// §8.10 / S2: heredoc content is returned in declaration FIFO order
// when multiple heredocs share a declaring line. This is the direct
// regression test for the "print(<<A, <<B);" bug the FIFO fix
// resolved (previously, B's content could be paired with A's node).
func TestCollectHeredocsFIFOOrder(t *testing.T) {
	src := "first\nA\nsecond\nB\n"
	pending := []PendingHeredoc{
		{Label: "A"},
		{Label: "B"},
	}

	results, next := CollectHeredocs(src, 0, pending)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first, second := results[0], results[1]
	if !first.Terminated || !second.Terminated {
		t.Fatalf("expected both heredocs terminated, got %+v %+v", first, second)
	}

	var firstBody, secondBody string
	for _, seg := range first.Segments {
		firstBody += spanText(src, seg.Start, seg.End) + "\n"
	}
	for _, seg := range second.Segments {
		secondBody += spanText(src, seg.Start, seg.End) + "\n"
	}

	if firstBody != "first\n" {
		t.Fatalf("expected first heredoc body %q, got %q", "first\n", firstBody)
	}
	if secondBody != "second\n" {
		t.Fatalf("expected second heredoc body %q, got %q", "second\n", secondBody)
	}
	if next != len(src) {
		t.Fatalf("expected next offset %d (end of source), got %d", len(src), next)
	}
}

// §8.11: "<<~" strips exactly the common byte prefix equal to the
// terminator's leading whitespace.
func TestCollectHeredocsTildeStripsCommonIndent(t *testing.T) {
	src := "    line one\n    line two\n    END\n"
	pending := []PendingHeredoc{{Label: "END", AllowIndent: true}}

	results, _ := CollectHeredocs(src, 0, pending)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	content := results[0]
	if !content.Terminated {
		t.Fatal("expected heredoc terminated")
	}
	if len(content.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(content.Segments))
	}
	if got := spanText(src, content.Segments[0].Start, content.Segments[0].End); got != "line one" {
		t.Fatalf("expected stripped line %q, got %q", "line one", got)
	}
	if got := spanText(src, content.Segments[1].Start, content.Segments[1].End); got != "line two" {
		t.Fatalf("expected stripped line %q, got %q", "line two", got)
	}
}

// A line indented less than the terminator's baseline only has its
// shorter common prefix stripped, never more than it actually shares.
func TestCollectHeredocsTildeStripsOnlyCommonPrefix(t *testing.T) {
	src := "  short\n    long line\n    END\n"
	pending := []PendingHeredoc{{Label: "END", AllowIndent: true}}

	results, _ := CollectHeredocs(src, 0, pending)
	content := results[0]
	if got := spanText(src, content.Segments[0].Start, content.Segments[0].End); got != "short" {
		t.Fatalf("expected %q, got %q", "short", got)
	}
	if got := spanText(src, content.Segments[1].Start, content.Segments[1].End); got != "long line" {
		t.Fatalf("expected %q, got %q", "long line", got)
	}
}

// A plain "<<LABEL" (no '~') never strips indentation, even when the
// terminator itself happens to be indented.
func TestCollectHeredocsWithoutTildeKeepsIndentationVerbatim(t *testing.T) {
	src := "    line one\nEND\n"
	pending := []PendingHeredoc{{Label: "END"}}

	results, _ := CollectHeredocs(src, 0, pending)
	content := results[0]
	if !content.Terminated {
		t.Fatal("expected heredoc terminated")
	}
	if got := spanText(src, content.Segments[0].Start, content.Segments[0].End); got != "    line one" {
		t.Fatalf("expected unstripped line %q, got %q", "    line one", got)
	}
}

func TestCollectHeredocsUnterminatedAtEOF(t *testing.T) {
	src := "body line\nno terminator here\n"
	pending := []PendingHeredoc{{Label: "END"}}

	results, next := CollectHeredocs(src, 0, pending)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Terminated {
		t.Fatal("expected heredoc to be reported unterminated")
	}
	if next != len(src) {
		t.Fatalf("expected next offset to reach EOF, got %d want %d", next, len(src))
	}
}

func TestCollectHeredocsEmptyPendingListNeverPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("CollectHeredocs panicked: %v", r)
		}
	}()
	results, next := CollectHeredocs("", 0, nil)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if next != 0 {
		t.Fatalf("expected next offset 0, got %d", next)
	}
}
