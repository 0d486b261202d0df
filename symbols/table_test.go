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
	"testing"

	"github.com/perltooling/perl-lsp/parser"
)

func TestBuildRecordsSubroutineAndVariableSymbols(t *testing.T) {
	src := "sub greet {\n    my $name = shift;\n    return $name;\n}\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	table := Build(root, "file:///greet.pl")
	var names []string
	for _, s := range table.All() {
		names = append(names, s.Name)
	}

	if !contains(names, "greet") {
		t.Fatalf("expected a subroutine symbol named greet, got %v", names)
	}
	if !contains(names, "$name") {
		t.Fatalf("expected a variable symbol named $name, got %v", names)
	}
}

func TestLookupAtOffsetRespectsShadowing(t *testing.T) {
	src := "my $x = 1;\n{\n    my $x = 2;\n    print $x;\n}\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	table := Build(root, "file:///shadow.pl")
	innerUse := strings.Index(src, "print $x") + len("print ")
	sym, ok := table.LookupAtOffset("$x", innerUse)
	if !ok {
		t.Fatal("expected to resolve $x")
	}
	if sym.DeclarationSpan.Start < strings.Index(src, "{") {
		t.Fatal("expected the inner shadowing declaration, not the outer one")
	}
}

func TestBuildRecordsConstantDeclaration(t *testing.T) {
	src := "use constant PI => 3.14159;\n"
	root, errs := parser.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	table := Build(root, "file:///const.pl")
	var names []string
	for _, s := range table.All() {
		if s.Kind == KindConstant {
			names = append(names, s.Name)
		}
	}
	if !contains(names, "PI") {
		t.Fatalf("expected a constant symbol named PI, got %v", names)
	}
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
