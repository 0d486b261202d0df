/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package logging

import "testing"

func TestNewRejectsInvalidLevel(t *testing.T) {
	if _, err := New("verbose"); err == nil {
		t.Fatal("expected an error for an invalid log level")
	}
}

func TestNewAcceptsKnownLevels(t *testing.T) {
	l, err := New("DEBUG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Level() != Debug {
		t.Fatalf("expected level to be lower-cased to %q, got %q", Debug, l.Level())
	}
}

func TestNopDiscardsWithoutPanicking(t *testing.T) {
	l := NewNop()
	l.LogError("boom")
	l.LogInfo("info")
	l.LogDebug("debug")
	l.With("uri", "file:///a.pl").LogInfo("scoped")
	if err := l.Sync(); err != nil {
		t.Fatalf("unexpected sync error: %v", err)
	}
}
