// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for shiftciph.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdEncipher Command = iota
	CmdDecipher
	CmdWatch
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format
	NoColor bool

	// Unknown carries an unrecognized command name for error reporting.
	Unknown string

	// Raw args (remaining after global flag parsing)
	Raw []string
}

const usageText = `shiftciph - circular shift-cipher for text files

Shiftciph enciphers and deciphers text files with a classic circular
alphabet shift (a generalized Caesar cipher). Letters always participate;
digits and punctuation are opt-in. This is a toy substitution cipher and
provides no cryptographic security.

Usage:
  shiftciph encipher -i <IFILE> [options]   Encipher a file (default output IFILE.ciph)
  shiftciph decipher -i <IFILE> [options]   Decipher a file (default output IFILE.dec)
  shiftciph watch    -i <IFILE> [options]   Re-run the transform when IFILE changes
  shiftciph history  [subcommand]           Inspect recorded runs
  shiftciph config   [show|set|path]        Configuration
  shiftciph version                         Show version information
  shiftciph help                            Show this message

Transform Options (encipher, decipher, watch):
  -i, --ifile <IFILE>        Input file to read ("-" reads stdin, streams to stdout)
  -o, --ofile <OFILE>        Output file to write (overwritten if it exists)
                             Default: IFILE plus ".ciph" / ".dec"
  -s, --shift-amount <N>     Positions to shift each alphabet (default: 5)
                             May be negative or larger than the alphabet
  -n, --shift-nums           Also shift digit characters
  -p, --shift-puncts         Also shift punctuation characters
  -a, --shift-all            Shorthand for -n -p
  -l, --show-log             Show run details (shifts, mapping sample, count)
  -t, --text <TEXT>          Transform TEXT directly instead of a file
      Short flags combine:   -np equals -n -p

Watch Options:
      --decipher             Watch in decipher mode (default: encipher)
      --debounce <MS>        Quiet period before re-running (default: 500)

History Commands:
  shiftciph history list            List recent runs (--limit N, default 20)
  shiftciph history show <id>       Show one run (id may be a unique prefix)
  shiftciph history stats           Aggregate statistics
  shiftciph history clear --confirm Delete all recorded runs

Config Commands:
  shiftciph config show             Show current configuration (default)
  shiftciph config set <key> <val>  Set a configuration value
  shiftciph config path             Show configuration file location

  Keys: shift_amount, shift_digits, shift_puncts, encipher_suffix,
        decipher_suffix, history_enabled, history_max_entries, color

Global Flags:
  -q, --quiet     Minimal output
      --verbose   Debug output
      --json      Output in JSON format
      --no-color  Disable styled output (NO_COLOR is also honored)

Examples:
  shiftciph encipher -i notes.txt                 Write notes.txt.ciph, shift 5
  shiftciph encipher -i notes.txt -s 13 -np       ROT13 letters plus digits/punctuation
  shiftciph decipher -i notes.txt.ciph -o out.txt Decipher to a chosen path
  shiftciph encipher -i msg.txt -s -3 -l          Negative shift with run details
  shiftciph encipher -t "Hello, World!" -s 5      Transform text directly
  cat notes.txt | shiftciph encipher -i -         Stream stdin to stdout
  shiftciph watch -i draft.txt -s 7               Keep draft.txt.ciph current
  shiftciph history list --limit 10               Recent runs
  shiftciph config set shift_amount 13            Change the default shift

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("shiftciph version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseFrom(os.Args[1:])
}

// ParseFrom parses the given arguments. Split out of Parse for testing.
func ParseFrom(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// Bare invocation prints usage, matching the original tools.
	if len(remaining) == 0 {
		return CmdHelp, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "encipher", "enc", "e":
		return CmdEncipher, parsedArgs

	case "decipher", "dec", "d":
		return CmdDecipher, parsedArgs

	case "watch", "w":
		return CmdWatch, parsedArgs

	case "history", "hist", "runs":
		return CmdHistory, parsedArgs

	case "config", "cfg":
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Unknown = cmd
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-color":
			parsedArgs.NoColor = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// VersionData represents version information for JSON output.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		resp := NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		})
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
