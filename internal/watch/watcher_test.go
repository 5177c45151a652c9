// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_RunsJobOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("before\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	var runs atomic.Int32
	w, err := New(path, 50*time.Millisecond, func() error {
		runs.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// Burst of writes should collapse into one debounced run.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("after\n"), 0644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if runs.Load() == 0 {
		t.Error("job never ran after file change")
	}

	cancel()
	<-done
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("x\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	var runs atomic.Int32
	w, err := New(path, 30*time.Millisecond, func() error {
		runs.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	if runs.Load() != 0 {
		t.Errorf("job ran %d times for an unrelated file", runs.Load())
	}

	cancel()
	<-done
}

func TestWatcher_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("x\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	w, err := New(path, DefaultDebounce, func() error { return nil }, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no-such-dir", "f.txt"), DefaultDebounce, func() error { return nil }, nil)
	if err == nil {
		t.Fatal("New() must fail when the parent directory does not exist")
	}
}
