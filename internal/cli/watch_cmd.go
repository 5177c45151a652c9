// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch_cmd.go - The watch command.
//
// Command: watch -i <IFILE> [options]
// Aliases: w
//
// Runs the transform once, then re-runs it whenever the input file changes
// until interrupted. Accepts the same flags as encipher/decipher plus:
//
//   --decipher              Watch in decipher mode (default is encipher)
//   --debounce <MS>         Quiet period before re-running (default 500)
//
// Examples:
//   shiftciph watch -i draft.txt -s 7
//   shiftciph watch -i secret.ciph --decipher -o secret.txt

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/shiftciph/internal/cipher"
	"github.com/jeranaias/shiftciph/internal/config"
	"github.com/jeranaias/shiftciph/internal/watch"
)

// watchFlags is the transform flag surface plus the watch-only flags.
var watchFlags = func() map[string]bool {
	m := map[string]bool{"decipher": true, "debounce": true}
	for k := range transformFlags {
		m[k] = true
	}
	return m
}()

// HandleWatch handles the "shiftciph watch" CLI command.
func HandleWatch(args Args) error {
	parser := NewArgParser(expandBundles(args.Raw))
	if err := validateFlags(parser, watchFlags); err != nil {
		return err
	}

	cfg := config.Global()

	opts, err := resolveOptions(parser, cfg)
	if err != nil {
		return err
	}

	mode := cipher.ModeEncipher
	if parser.BoolFlag("decipher") {
		mode = cipher.ModeDecipher
	}
	mapping := cipher.BuildMapping(mode, opts)

	input := parser.FlagAny("ifile", "i")
	if input == "" {
		return &ValidationError{
			Field:   "--ifile",
			Message: "an input file is required",
		}
	}
	if input == "-" {
		return &ValidationError{
			Field:   "--ifile",
			Value:   "-",
			Message: "watch requires a real file, not stdin",
		}
	}

	output := parser.FlagAny("ofile", "o")
	if output == "" {
		output = input + outputSuffix(mode, cfg)
	}

	debounce := time.Duration(parser.FlagIntOrDefault("debounce", 0)) * time.Millisecond

	job := func() error {
		report, err := transformFile(mode, opts, mapping, input, output)
		if err != nil {
			return err
		}
		recordRun(cfg, report)
		if !args.Quiet {
			fmt.Printf("%s %s %s %s (%d chars)\n",
				RenderConditional(DimStyle, time.Now().Format("15:04:05")),
				report.InputPath,
				RenderConditional(DimStyle, "->"),
				report.OutputPath,
				report.CharsProcessed)
		}
		return nil
	}

	// Initial pass before watching; a missing input file fails fast here.
	if err := job(); err != nil {
		return err
	}

	w, err := watch.New(input, debounce, job, func(err error) {
		StderrPrintf("%s %v\n", RenderConditional(WarningStyle, "watch:"), err)
	})
	if err != nil {
		return WrapError("watch", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !args.Quiet {
		fmt.Printf("Watching %s (Ctrl-C to stop)\n", input)
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return WrapError("watch", err)
	}
	return nil
}
