// shiftciph - A circular shift-cipher CLI for text files.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/shiftciph/internal/cli"
	"github.com/jeranaias/shiftciph/internal/config"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	// Warm the global config. A broken config file falls back to defaults.
	_ = config.Global()

	// --no-color and the persistent color setting override TTY detection.
	cli.ConfigureColors(args)

	var err error

	switch cmd {
	case cli.CmdEncipher:
		err = cli.HandleEncipher(args)

	case cli.CmdDecipher:
		err = cli.HandleDecipher(args)

	case cli.CmdWatch:
		err = cli.HandleWatch(args)

	case cli.CmdHistory:
		err = cli.HandleHistory(args)

	case cli.CmdConfig:
		err = cli.HandleConfig(args)

	case cli.CmdVersion:
		cli.HandleVersion(args)

	case cli.CmdHelp:
		cli.HandleHelp()

	case cli.CmdUnknown:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args.Unknown)
		cli.PrintUsage()
		os.Exit(cli.ExitUsage)
	}

	if err != nil {
		cli.DisplayError(err, args)
		os.Exit(cli.GetExitCode(err))
	}
}
