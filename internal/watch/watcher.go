// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-runs a cipher transform whenever the input file changes.
//
// Editors typically produce bursts of Write/Create/Rename events for a single
// save, so events are debounced: the job runs once per quiet period, not once
// per event.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period required before the job re-runs.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a single file and invokes a job on changes.
type Watcher struct {
	path     string
	debounce time.Duration
	job      func() error
	onError  func(error)

	fsw *fsnotify.Watcher
}

// New creates a watcher for path. job runs after each debounced change;
// onError receives job and watch errors (may be nil).
func New(path string, debounce time.Duration, job func() error, onError func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the parent directory, not the file itself: editors that save via
	// rename replace the inode and would silently detach a file-level watch.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		job:      job,
		onError:  onError,
		fsw:      fsw,
	}, nil
}

// Run blocks, re-running the job on debounced changes, until the context is
// canceled. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)

		case <-fire:
			timer = nil
			fire = nil
			if err := w.job(); err != nil {
				w.reportError(err)
			}
		}
	}
}

// relevant filters directory events down to content changes of the watched
// file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
