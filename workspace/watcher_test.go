/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/perltooling/perl-lsp/symbols"
)

type fakeIndex struct {
	mu      sync.Mutex
	updated []string
	removed []string
}

func (f *fakeIndex) Update(table *symbols.Table) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, table.URI)
}

func (f *fakeIndex) Remove(uri string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, uri)
}

func (f *fakeIndex) sawUpdate(uri string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.updated {
		if u == uri {
			return true
		}
	}
	return false
}

func TestWatcherIndexesExistingFilesOnStart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.pm")
	if err := os.WriteFile(path, []byte("package Foo;\nsub bar { 1 }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	idx := &fakeIndex{}
	w, err := New(dir, idx, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if !idx.sawUpdate(uriForPath(path)) {
		t.Fatalf("expected %s to be indexed on startup, updated=%v", path, idx.updated)
	}
}

func TestWatcherSkipsOpenDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Open.pm")
	if err := os.WriteFile(path, []byte("package Open;\n"), 0644); err != nil {
		t.Fatal(err)
	}

	idx := &fakeIndex{}
	isOpen := func(uri string) bool { return uri == uriForPath(path) }
	w, err := New(dir, idx, isOpen, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	idx.mu.Lock()
	idx.updated = nil
	idx.mu.Unlock()

	if err := os.WriteFile(path, []byte("package Open;\nsub changed { 1 }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(600 * time.Millisecond)

	if idx.sawUpdate(uriForPath(path)) {
		t.Fatalf("did not expect the open document to be reindexed from disk")
	}
}
