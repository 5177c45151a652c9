// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestHandleWatch_RejectsUnknownFlags(t *testing.T) {
	err := HandleWatch(Args{Raw: []string{"--shfit-amount", "9", "-i", "notes.txt"}})
	if err == nil {
		t.Fatal("misspelled flag should be rejected, not silently ignored")
	}
	if GetExitCode(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsage)
	}
}

func TestWatchFlags_AcceptWatchOnlyFlags(t *testing.T) {
	argv := []string{"-i", "a.txt", "--decipher", "--debounce", "250", "-np", "-s", "7"}
	p := NewArgParser(expandBundles(argv))
	if err := validateFlags(p, watchFlags); err != nil {
		t.Errorf("validateFlags(%v) = %v, want nil", argv, err)
	}

	// The transform commands do not take the watch-only flags.
	p = NewArgParser([]string{"--decipher"})
	if err := validateTransformFlags(p); err == nil {
		t.Error("--decipher should not validate for encipher/decipher")
	}
}
