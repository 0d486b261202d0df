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

import "testing"

func TestDocumentChangeFullBumpsGeneration(t *testing.T) {
	d := NewDocument("file:///a.pl", "my $x = 1;\n", 1)
	if d.Generation() != 0 {
		t.Fatalf("expected generation 0, got %d", d.Generation())
	}

	d.ChangeFull("my $x = 2;\n", 2)
	if d.Generation() != 1 {
		t.Fatalf("expected generation 1 after change, got %d", d.Generation())
	}
	if d.Text() != "my $x = 2;\n" {
		t.Fatalf("unexpected text: %q", d.Text())
	}
}

func TestDocumentChangeIncrementalAppliesOrderedEdits(t *testing.T) {
	d := NewDocument("file:///a.pl", "my $x = 1;\n", 1)

	edits := []Edit{
		{StartLine: 0, StartColumn: 8, EndLine: 0, EndColumn: 9, NewText: "42"},
	}
	d.ChangeIncremental(edits, 2)

	if d.Text() != "my $x = 42;\n" {
		t.Fatalf("unexpected text after edit: %q", d.Text())
	}
	if d.Generation() != 1 {
		t.Fatalf("expected a single generation bump, got %d", d.Generation())
	}
}

func TestDocumentASTCachedUntilMutation(t *testing.T) {
	d := NewDocument("file:///a.pl", "my $x = 1;\n", 1)

	root1, _ := d.AST()
	root2, _ := d.AST()
	if root1 != root2 {
		t.Fatal("expected the same cached AST pointer across calls")
	}

	d.ChangeFull("my $y = 2;\n", 2)
	root3, _ := d.AST()
	if root3 == root1 {
		t.Fatal("expected a fresh AST after mutation")
	}
}
