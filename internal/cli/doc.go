// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for shiftciph.
//
// The cipher core lives in internal/cipher; this package is the plumbing
// around it: flag parsing, output naming, styled and JSON output, run
// history, and file watching.
//
// # Key Types
//
//   - Command: enumeration of the available CLI commands
//   - Args: parsed command-line arguments (global flags plus raw remainder)
//   - ArgParser: unified subcommand/flag parsing used by command handlers
//
// # Commands Overview
//
//   - encipher: shift a text file forward (output defaults to FILE.ciph)
//   - decipher: apply the inverse shift (output defaults to FILE.dec)
//   - watch:    re-run a transform whenever the input file changes
//   - history:  list, inspect, and clear recorded runs
//   - config:   show and modify persistent defaults
//
// All commands support --json for machine-readable output.
package cli
