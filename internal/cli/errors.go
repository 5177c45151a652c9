// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types, exit codes, and error display for the CLI.

package cli

import (
	"errors"
	"fmt"
	"os"
)

// =============================================================================
// EXIT CODES
// =============================================================================

// Exit codes returned by the shiftciph binary. Scripts can branch on these.
const (
	ExitSuccess  = 0 // Command completed successfully
	ExitGeneral  = 1 // General error (I/O failure, internal error)
	ExitUsage    = 2 // Usage error (bad flags, invalid arguments)
	ExitConfig   = 3 // Configuration error (bad config file or value)
	ExitNotFound = 7 // Resource not found (input file, history run)
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents an error from command execution with an
// associated exit code.
type CommandError struct {
	Command  string // Which command failed
	Message  string // Human-readable message
	ExitCode int    // Process exit code
	Err      error  // Wrapped underlying error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Command, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents an invalid flag or argument value.
// Always maps to ExitUsage.
type ValidationError struct {
	Field   string // Flag or argument name
	Value   string // The offending value
	Message string // What was expected
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError represents a missing resource (file, history run).
// Always maps to ExitNotFound.
type NotFoundError struct {
	Kind string // "file", "run", "config key"
	Name string // The resource identifier
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// ConfigError represents a configuration problem. Maps to ExitConfig.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrMissingArgument is returned when a required argument is absent.
var ErrMissingArgument = errors.New("missing required argument")

// =============================================================================
// ERROR HELPERS
// =============================================================================

// NewCommandError creates a CommandError with the given exit code.
func NewCommandError(command, message string, exitCode int, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Message:  message,
		ExitCode: exitCode,
		Err:      err,
	}
}

// WrapError wraps an error with command context at ExitGeneral.
func WrapError(command string, err error) *CommandError {
	if err == nil {
		return nil
	}
	return &CommandError{
		Command:  command,
		Message:  "command failed",
		ExitCode: ExitGeneral,
		Err:      err,
	}
}

// GetExitCode extracts the appropriate exit code from an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return ExitUsage
	}

	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return ExitNotFound
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfig
	}

	if errors.Is(err, ErrMissingArgument) {
		return ExitUsage
	}

	if os.IsNotExist(err) {
		return ExitNotFound
	}

	return ExitGeneral
}

// DisplayError prints an error to stderr, styled when the terminal
// supports it, or as a JSON envelope when --json was given.
func DisplayError(err error, args Args) {
	if err == nil {
		return
	}

	if args.JSON {
		DisplayErrorJSON(err)
		return
	}

	msg := WrapText(err.Error(), GetTerminalWidth())
	if ColorsEnabled() && !args.NoColor {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+msg)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
}

// DisplayErrorJSON prints an error as a JSON envelope to stderr.
func DisplayErrorJSON(err error) {
	resp := NewJSONErrorResponse("", err)
	resp.PrintTo(os.Stderr)
}
