// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Unified argument parsing for all shiftciph commands.
//
// Every command shares one parser so flags behave identically everywhere:
// long flags, short flags, equals syntax, booleans, and positional args.

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser provides unified argument parsing for CLI commands.
// It handles multiple flag formats consistently:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (no value needed)
//   - Positional arguments: arguments without flags
//   - Subcommands: first positional argument
type ArgParser struct {
	subcommand string            // First positional arg (e.g., "list", "show")
	flags      map[string]string // String flags (--key=value)
	boolFlags  map[string]bool   // Boolean flags (--confirm)
	positional []string          // All positional arguments including subcommand
	raw        []string          // Original raw arguments
}

// NewArgParser creates a new argument parser from raw arguments.
//
// Supported flag formats:
//
//	--flag value     Long flag with space-separated value
//	--flag=value     Long flag with equals sign
//	-f value         Short flag with space-separated value
//	--flag           Boolean flag (no value)
//
// Example:
//
//	args := NewArgParser([]string{"list", "--limit", "10", "--json"})
//	args.Subcommand()     // "list"
//	args.Flag("limit")    // "10"
//	args.BoolFlag("json") // true
func NewArgParser(raw []string) *ArgParser {
	parser := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
		raw:        raw,
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if strings.HasPrefix(arg, "-") && arg != "-" {
			// Handle --flag=value format
			if strings.Contains(arg, "=") {
				parts := strings.SplitN(arg, "=", 2)
				flagName := strings.TrimLeft(parts[0], "-")
				flagValue := parts[1]

				// Boolean flags can be explicit: --json=true, --json=false
				if flagValue == "true" || flagValue == "false" {
					parser.boolFlags[flagName] = flagValue == "true"
				} else {
					parser.flags[flagName] = flagValue
				}
				i++
				continue
			}

			flagName := strings.TrimLeft(arg, "-")

			// A following non-flag token is the flag's value. A lone "-"
			// counts as a value so "-i -" reads stdin, and a negative
			// number counts as a value so "-s -3" works.
			if i+1 < len(raw) && (!strings.HasPrefix(raw[i+1], "-") || raw[i+1] == "-" || isNegativeNumber(raw[i+1])) {
				parser.flags[flagName] = raw[i+1]
				i += 2
			} else {
				parser.boolFlags[flagName] = true
				i++
			}
		} else {
			parser.positional = append(parser.positional, arg)
			i++
		}
	}

	if len(parser.positional) > 0 {
		parser.subcommand = parser.positional[0]
	}

	return parser
}

// Subcommand returns the first positional argument (subcommand).
// Returns empty string if there are no positional arguments.
func (p *ArgParser) Subcommand() string {
	return p.subcommand
}

// Flag returns the value of a string flag, or empty string if absent.
func (p *ArgParser) Flag(name string) string {
	if val, ok := p.flags[name]; ok {
		return val
	}
	name = strings.TrimLeft(name, "-")
	if val, ok := p.flags[name]; ok {
		return val
	}
	return ""
}

// FlagAny returns the first present flag value among the given names.
// Used for long/short aliases: FlagAny("ifile", "i").
func (p *ArgParser) FlagAny(names ...string) string {
	for _, name := range names {
		if val := p.Flag(name); val != "" {
			return val
		}
	}
	return ""
}

// FlagOrDefault returns the flag value or a default if not found.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// FlagInt returns the flag value as an integer.
func (p *ArgParser) FlagInt(name string) (int, error) {
	val := p.Flag(name)
	if val == "" {
		return 0, fmt.Errorf("flag %s not found", name)
	}
	return strconv.Atoi(val)
}

// FlagIntOrDefault returns the flag value as an integer or a default.
// Returns the default if the flag is missing or not a valid integer.
func (p *ArgParser) FlagIntOrDefault(name string, defaultValue int) int {
	val, err := p.FlagInt(name)
	if err != nil {
		return defaultValue
	}
	return val
}

// BoolFlag returns the value of a boolean flag, false if absent.
func (p *ArgParser) BoolFlag(name string) bool {
	if val, ok := p.boolFlags[name]; ok {
		return val
	}
	name = strings.TrimLeft(name, "-")
	if val, ok := p.boolFlags[name]; ok {
		return val
	}
	return false
}

// BoolFlagAny returns true if any of the given boolean flags is set.
func (p *ArgParser) BoolFlagAny(names ...string) bool {
	for _, name := range names {
		if p.BoolFlag(name) {
			return true
		}
	}
	return false
}

// Positional returns the positional argument at the given index, or empty
// string if out of bounds. Index 0 is the subcommand.
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// HasFlag returns true if the flag exists (either as string or bool flag).
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}

// Raw returns the original raw arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}

// isNegativeNumber reports whether s looks like "-3" or "-42".
func isNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ParseBoolString parses a boolean from various string representations.
// Accepts: true/false, yes/no, y/n, 1/0, on/off (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
