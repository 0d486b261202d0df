/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// Package workspace watches the project tree for .pl/.pm files changed
// outside the editor and keeps the workspace symbol index current for
// them (§9).
package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/perltooling/perl-lsp/logging"
	"github.com/perltooling/perl-lsp/parser"
	"github.com/perltooling/perl-lsp/symbols"
)

/*
Indexer is the subset of *symbols.Index a Watcher needs. Kept as an
interface so tests can substitute a fake.
*/
type Indexer interface {
	Update(table *symbols.Table)
	Remove(uri string)
}

/*
IsOpen reports whether uri is currently open in the editor; the watcher
skips reindexing open documents since didChange already keeps them
current and a stale-on-disk read would regress the live index.
*/
type IsOpen func(uri string) bool

/*
Watcher recursively watches a workspace root for .pl/.pm changes and
reindexes them into an Indexer, grounded on
`theRebelliousNerd-codenerd/internal/core/mangle_watcher.go`'s
debounced fsnotify loop.
*/
type Watcher struct {
	mu          sync.Mutex
	fsw         *fsnotify.Watcher
	root        string
	index       Indexer
	isOpen      IsOpen
	log         *logging.Logger
	debounce    time.Duration
	pending     map[string]time.Time
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

/*
New creates a Watcher rooted at root. isOpen may be nil, in which case
every file on disk is reindexed regardless of editor state.
*/
func New(root string, index Indexer, isOpen IsOpen, log *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNop()
	}
	if isOpen == nil {
		isOpen = func(string) bool { return false }
	}
	return &Watcher{
		fsw:      fsw,
		root:     root,
		index:    index,
		isOpen:   isOpen,
		log:      log,
		debounce: 300 * time.Millisecond,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

func isPerlSource(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".pl" || ext == ".pm" || ext == ".t"
}

/*
Start walks root adding every directory to the underlying fsnotify
watcher (fsnotify does not recurse on its own), indexes the tree once,
then starts the debounced event loop in a goroutine.
*/
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	err := filepath.WalkDir(w.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if addErr := w.fsw.Add(path); addErr != nil {
				w.log.LogError("workspace: failed to watch ", path, ": ", addErr)
			}
			return nil
		}
		if isPerlSource(path) {
			w.indexFile(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	go w.run(ctx)
	return nil
}

/*
Stop halts the event loop and closes the underlying fsnotify watcher.
*/
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.LogError("workspace watcher: ", err)
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !isPerlSource(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Remove != 0 || ev.Op&fsnotify.Rename != 0 {
		w.index.Remove(uriForPath(ev.Name))
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	w.mu.Lock()
	w.pending[ev.Name] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	now := time.Now()
	var ready []string
	for path, t := range w.pending {
		if now.Sub(t) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		if w.isOpen(uriForPath(path)) {
			continue
		}
		w.indexFile(path)
	}
}

func (w *Watcher) indexFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	root, _ := parser.Parse(string(content))
	w.index.Update(symbols.Build(root, uriForPath(path)))
}

func uriForPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}
