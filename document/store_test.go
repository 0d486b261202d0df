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

func TestStoreOpenGetClose(t *testing.T) {
	s, err := NewStore(16)
	if err != nil {
		t.Fatal(err)
	}

	s.Open("file:///a.pl", "my $x = 1;\n", 1)
	if _, ok := s.Get("file:///a.pl"); !ok {
		t.Fatal("expected document to be open")
	}

	s.Close("file:///a.pl")
	if _, ok := s.Get("file:///a.pl"); ok {
		t.Fatal("expected document to be closed")
	}
}

func TestStoreASTReusesCacheAcrossCalls(t *testing.T) {
	s, err := NewStore(16)
	if err != nil {
		t.Fatal(err)
	}
	s.Open("file:///a.pl", "my $x = 1;\n", 1)

	root1, _, err := s.AST("file:///a.pl")
	if err != nil {
		t.Fatal(err)
	}
	root2, _, err := s.AST("file:///a.pl")
	if err != nil {
		t.Fatal(err)
	}
	if root1 != root2 {
		t.Fatal("expected AST cache hit across repeated calls")
	}

	if err := s.ChangeFull("file:///a.pl", "my $x = 2;\n", 2); err != nil {
		t.Fatal(err)
	}
	root3, _, err := s.AST("file:///a.pl")
	if err != nil {
		t.Fatal(err)
	}
	if root3 == root1 {
		t.Fatal("expected a new AST after a document change")
	}
}

func TestStoreChangeOnUnopenedDocumentErrors(t *testing.T) {
	s, err := NewStore(16)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ChangeFull("file:///missing.pl", "text", 1); err == nil {
		t.Fatal("expected an error changing an unopened document")
	}
}
