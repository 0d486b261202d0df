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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/perltooling/perl-lsp/lsp"
	"github.com/perltooling/perl-lsp/parser"
	"github.com/perltooling/perl-lsp/position"
	"github.com/perltooling/perl-lsp/symbols"
)

func TestHoverReturnsDeclarationInfo(t *testing.T) {
	src := "sub greet {\n    my $name = shift;\n    return $name;\n}\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	cache := position.NewLineStartsCache(src)
	table := symbols.Build(root, "file:///a.pl")

	offset := strings.Index(src, "return $name") + len("return ")
	pos := cache.OffsetToPosition(offset)
	hover, ok := Hover(root, cache, table, lsp.Position{Line: pos.Line, Character: pos.Column})
	if !ok {
		t.Fatal("expected a hover result for $name")
	}
	if !strings.Contains(hover.Contents, "variable") {
		t.Fatalf("expected hover contents to mention the variable kind, got %q", hover.Contents)
	}
}

func TestDiagnosticsFlagsMissingStrictAndAssignmentInCondition(t *testing.T) {
	src := "if ($x = 1) {\n    print $x;\n}\n"
	root, errs := parser.Parse(src)
	cache := position.NewLineStartsCache(src)
	table := symbols.Build(root, "file:///a.pl")

	diags := Diagnostics(root, cache, errs, table)
	var codes []string
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	if !containsStr(codes, "missing-strict") {
		t.Fatalf("expected a missing-strict diagnostic, got %v", codes)
	}
	if !containsStr(codes, "assignment-in-condition") {
		t.Fatalf("expected an assignment-in-condition diagnostic, got %v", codes)
	}
}

func TestDocumentSymbolProducesHierarchy(t *testing.T) {
	src := "package Foo;\nsub bar {\n    my $x = 1;\n}\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	cache := position.NewLineStartsCache(src)

	syms := DocumentSymbol(root, cache)
	if len(syms) == 0 {
		t.Fatal("expected at least one top-level symbol")
	}

	gotNames := make([]string, len(syms))
	for i, s := range syms {
		gotNames[i] = s.Name
	}
	wantNames := []string{"Foo", "bar"}
	if diff := cmp.Diff(wantNames, gotNames); diff != "" {
		t.Fatalf("top-level symbol names mismatch (-want +got):\n%s", diff)
	}
}

func TestFoldingRangesCoversMultilineSubroutine(t *testing.T) {
	src := "sub foo {\n    my $x = 1;\n    return $x;\n}\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	cache := position.NewLineStartsCache(src)

	ranges := FoldingRanges(root, cache)
	if len(ranges) == 0 {
		t.Fatal("expected at least one folding range")
	}
}

func TestSignatureHelpReportsActiveParameterForBuiltin(t *testing.T) {
	src := "push @list, 1, 2;\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	cache := position.NewLineStartsCache(src)
	table := symbols.Build(root, "file:///a.pl")

	offset := strings.Index(src, "1,") + 1
	pos := cache.OffsetToPosition(offset)

	help := SignatureHelp(root, cache, table, lsp.Position{Line: pos.Line, Character: pos.Column})
	if help == nil {
		t.Fatal("expected signature help for push(...)")
	}
	if len(help.Signatures) == 0 {
		t.Fatal("expected at least one signature")
	}
	if help.ActiveParameter != 1 {
		t.Fatalf("expected active parameter 1 (the LIST argument), got %d", help.ActiveParameter)
	}
}

func TestCodeActionsFixesMissingStrict(t *testing.T) {
	src := "print 1;\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	cache := position.NewLineStartsCache(src)
	table := symbols.Build(root, "file:///a.pl")

	diags := Diagnostics(root, cache, errs, table)
	fullRange := lsp.Range{End: lsp.Position{Line: 10}}
	actions := CodeActions(root, cache, "file:///a.pl", fullRange, diags)

	var found bool
	for _, a := range actions {
		if a.Title == "Add `use strict;`" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a quick fix for missing-strict, got %v", actions)
	}
}

func containsStr(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
