// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

// =============================================================================
// EXIT CODE TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneral},
		{
			"command error carries its code",
			NewCommandError("history", "db locked", ExitGeneral, nil),
			ExitGeneral,
		},
		{
			"validation error",
			&ValidationError{Field: "--shift-amount", Value: "abc", Message: "must be an integer"},
			ExitUsage,
		},
		{
			"not found error",
			&NotFoundError{Kind: "input file", Name: "missing.txt"},
			ExitNotFound,
		},
		{
			"config error",
			&ConfigError{Message: "bad value"},
			ExitConfig,
		},
		{"missing argument", ErrMissingArgument, ExitUsage},
		{
			"wrapped missing argument",
			fmt.Errorf("encipher: %w", ErrMissingArgument),
			ExitUsage,
		},
		{
			"wrapped validation error",
			fmt.Errorf("outer: %w", &ValidationError{Field: "x", Message: "bad"}),
			ExitUsage,
		},
		{"os not exist", os.ErrNotExist, ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := WrapError("encipher", inner)

	if !errors.Is(err, inner) {
		t.Error("WrapError should preserve the inner error")
	}
	if err.ExitCode != ExitGeneral {
		t.Errorf("ExitCode = %d, want %d", err.ExitCode, ExitGeneral)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			&ValidationError{Field: "--shift-amount", Value: "abc", Message: "must be an integer"},
			`invalid --shift-amount "abc": must be an integer`,
		},
		{
			&ValidationError{Field: "--ifile", Message: "an input file is required"},
			"invalid --ifile: an input file is required",
		},
		{
			&NotFoundError{Kind: "run", Name: "3f2a"},
			"run not found: 3f2a",
		},
		{
			&ConfigError{Message: "bad value"},
			"config: bad value",
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
