// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// transform_cmd.go - The encipher and decipher commands.
//
// Command: encipher -i <IFILE> [options]
// Aliases: enc, e
// Command: decipher -i <IFILE> [options]
// Aliases: dec, d
//
// Flags:
//   -i, --ifile <IFILE>      Input file ("-" streams stdin to stdout)
//   -o, --ofile <OFILE>      Output file (default IFILE + configured suffix)
//   -s, --shift-amount <N>   Signed shift amount (default from config)
//   -n, --shift-nums         Also shift digits
//   -p, --shift-puncts       Also shift punctuation
//   -a, --shift-all          Shorthand for -n -p
//   -l, --show-log           Show run details after the transform
//   -t, --text <TEXT>        Transform TEXT directly instead of a file
//
// Short boolean flags combine: "-np" is "-n -p".
//
// Examples:
//   shiftciph encipher -i notes.txt
//   shiftciph encipher -i notes.txt -s 13 -np
//   shiftciph decipher -i notes.txt.ciph -o out.txt
//   shiftciph encipher -t "Hello, World!" -s 5
//   cat notes.txt | shiftciph encipher -i -

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/shiftciph/internal/cipher"
	"github.com/jeranaias/shiftciph/internal/config"
	"github.com/jeranaias/shiftciph/internal/history"
)

// =============================================================================
// FLAG HANDLING
// =============================================================================

// bundleChars are the short boolean flags that may be combined into one
// token, getopt style.
const bundleChars = "anpl"

// transformFlags is the set of flags the transform commands accept.
// Anything else is a usage error.
var transformFlags = map[string]bool{
	"i": true, "ifile": true,
	"o": true, "ofile": true,
	"s": true, "shift-amount": true,
	"n": true, "shift-nums": true,
	"p": true, "shift-puncts": true,
	"a": true, "shift-all": true,
	"l": true, "show-log": true,
	"t": true, "text": true,
	"q": true, "quiet": true,
	"verbose": true, "json": true, "no-color": true,
}

// expandBundles rewrites combined short boolean flags ("-np") into their
// separate forms ("-n" "-p"). Tokens that contain any character outside
// the bundle set are left alone and caught by flag validation.
func expandBundles(argv []string) []string {
	out := make([]string, 0, len(argv))
	for _, arg := range argv {
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' && allBundleChars(arg[1:]) {
			for _, c := range arg[1:] {
				out = append(out, "-"+string(c))
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

func allBundleChars(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(bundleChars, c) {
			return false
		}
	}
	return true
}

// validateTransformFlags rejects flags the transform commands do not know.
func validateTransformFlags(parser *ArgParser) error {
	return validateFlags(parser, transformFlags)
}

func validateFlags(parser *ArgParser, allowed map[string]bool) error {
	for _, raw := range parser.Raw() {
		if !strings.HasPrefix(raw, "-") || raw == "-" || isNegativeNumber(raw) {
			continue
		}
		name := strings.TrimLeft(raw, "-")
		if i := strings.Index(name, "="); i >= 0 {
			name = name[:i]
		}
		if !allowed[name] {
			return &ValidationError{
				Field:   "flag",
				Value:   raw,
				Message: "unknown option (see 'shiftciph help')",
			}
		}
	}
	return nil
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleEncipher handles the "shiftciph encipher" CLI command.
func HandleEncipher(args Args) error {
	return handleTransform(cipher.ModeEncipher, args)
}

// HandleDecipher handles the "shiftciph decipher" CLI command.
func HandleDecipher(args Args) error {
	return handleTransform(cipher.ModeDecipher, args)
}

// handleTransform runs one encipher or decipher pass. Both commands share
// the same flag surface and only differ in the mapping direction and the
// default output suffix.
func handleTransform(mode cipher.Mode, args Args) error {
	parser := NewArgParser(expandBundles(args.Raw))
	if err := validateTransformFlags(parser); err != nil {
		return err
	}

	cfg := config.Global()

	opts, err := resolveOptions(parser, cfg)
	if err != nil {
		return err
	}

	mapping := cipher.BuildMapping(mode, opts)
	showLog := parser.BoolFlagAny("l", "show-log") || args.Verbose

	if text := parser.FlagAny("text", "t"); text != "" {
		return transformText(mode, opts, mapping, text, args)
	}

	input := parser.FlagAny("ifile", "i")
	if input == "" {
		return &ValidationError{
			Field:   "--ifile",
			Message: "an input file is required (or use --text)",
		}
	}

	if input == "-" {
		return transformStdin(mapping)
	}

	output := parser.FlagAny("ofile", "o")
	if output == "" {
		output = input + outputSuffix(mode, cfg)
	}

	report, err := transformFile(mode, opts, mapping, input, output)
	if err != nil {
		return err
	}

	recordRun(cfg, report)
	displayReport(mode.String(), report, args, showLog)
	return nil
}

// resolveOptions merges flags over configured defaults.
func resolveOptions(parser *ArgParser, cfg *config.Config) (cipher.Options, error) {
	opts := cipher.Options{
		ShiftAmount:   cfg.Cipher.ShiftAmount,
		IncludeDigits: cfg.Cipher.ShiftDigits,
		IncludePuncts: cfg.Cipher.ShiftPuncts,
	}

	if raw := parser.FlagAny("shift-amount", "s"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, &ValidationError{
				Field:   "--shift-amount",
				Value:   raw,
				Message: "must be an integer",
			}
		}
		opts.ShiftAmount = n
	}

	if parser.BoolFlagAny("a", "shift-all") {
		opts.IncludeDigits = true
		opts.IncludePuncts = true
	}
	if parser.BoolFlagAny("n", "shift-nums") {
		opts.IncludeDigits = true
	}
	if parser.BoolFlagAny("p", "shift-puncts") {
		opts.IncludePuncts = true
	}

	return opts, nil
}

// outputSuffix returns the configured default suffix for the mode.
func outputSuffix(mode cipher.Mode, cfg *config.Config) string {
	if mode == cipher.ModeEncipher {
		return cfg.Output.EncipherSuffix
	}
	return cfg.Output.DecipherSuffix
}

// =============================================================================
// TRANSFORM EXECUTION
// =============================================================================

// transformFile reads input, writes the substituted text to output, and
// returns the run report. The output file is created fresh each run.
func transformFile(mode cipher.Mode, opts cipher.Options, mapping cipher.Mapping, input, output string) (*cipher.Report, error) {
	info, err := os.Stat(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Kind: "input file", Name: input}
		}
		return nil, fmt.Errorf("failed to stat input file: %w", err)
	}
	if info.IsDir() {
		return nil, &ValidationError{
			Field:   "--ifile",
			Value:   input,
			Message: "is a directory",
		}
	}

	in, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	start := time.Now()
	chars, terr := cipher.Transform(in, out, mapping)
	if cerr := out.Close(); terr == nil {
		terr = cerr
	}
	if terr != nil {
		os.Remove(output)
		return nil, fmt.Errorf("transform failed: %w", terr)
	}

	return &cipher.Report{
		Mode:           mode,
		Options:        opts,
		Shifts:         opts.Reduced(),
		InputPath:      input,
		OutputPath:     output,
		CharsProcessed: chars,
		Duration:       time.Since(start),
		SampleEntries:  mapping.Sample(10),
	}, nil
}

// transformStdin streams stdin through the mapping to stdout. No report,
// no history: the command is acting as a pipe filter.
func transformStdin(mapping cipher.Mapping) error {
	if _, err := cipher.Transform(os.Stdin, os.Stdout, mapping); err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}
	return nil
}

// transformText transforms a literal string and prints the result.
func transformText(mode cipher.Mode, opts cipher.Options, mapping cipher.Mapping, text string, args Args) error {
	result, chars := cipher.TransformString(text, mapping)

	if args.JSON {
		shifts := opts.Reduced()
		data := TransformData{
			Mode:           mode.String(),
			Input:          "(text)",
			Output:         "(text)",
			ShiftAmount:    opts.ShiftAmount,
			LetterShift:    shifts.Letters,
			CharsProcessed: chars,
			Text:           result,
		}
		if opts.IncludeDigits {
			data.DigitShift = &shifts.Digits
		}
		if opts.IncludePuncts {
			data.PunctShift = &shifts.Puncts
		}
		return NewJSONResponse(mode.String(), data).Print()
	}

	fmt.Println(result)
	return nil
}

// =============================================================================
// HISTORY RECORDING
// =============================================================================

// recordRun appends the run to the history store. Failures are reported to
// stderr but never fail the transform itself.
func recordRun(cfg *config.Config, report *cipher.Report) {
	if !cfg.History.Enabled {
		return
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		StderrPrintf("%s history disabled: %v\n", RenderConditional(WarningStyle, "warning:"), err)
		return
	}

	store, err := history.Open(path, cfg.History.MaxEntries)
	if err != nil {
		StderrPrintf("%s history disabled: %v\n", RenderConditional(WarningStyle, "warning:"), err)
		return
	}
	defer store.Close()

	run := &history.Run{
		Mode:           report.Mode.String(),
		InputPath:      report.InputPath,
		OutputPath:     report.OutputPath,
		ShiftAmount:    report.Options.ShiftAmount,
		LetterShift:    report.Shifts.Letters,
		DigitShift:     report.Shifts.Digits,
		PunctShift:     report.Shifts.Puncts,
		IncludeDigits:  report.Options.IncludeDigits,
		IncludePuncts:  report.Options.IncludePuncts,
		CharsProcessed: report.CharsProcessed,
		DurationMs:     report.Duration.Milliseconds(),
	}
	if err := store.Record(run); err != nil {
		StderrPrintf("%s failed to record run: %v\n", RenderConditional(WarningStyle, "warning:"), err)
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

// displayReport prints the run outcome: a one-line summary by default, the
// full run log with -l, a JSON envelope with --json, nothing with -q.
func displayReport(command string, report *cipher.Report, args Args, showLog bool) {
	if args.JSON {
		shifts := report.Shifts
		data := TransformData{
			Mode:           command,
			Input:          report.InputPath,
			Output:         report.OutputPath,
			ShiftAmount:    report.Options.ShiftAmount,
			LetterShift:    shifts.Letters,
			CharsProcessed: report.CharsProcessed,
			DurationMs:     report.Duration.Milliseconds(),
		}
		if report.Options.IncludeDigits {
			data.DigitShift = &shifts.Digits
		}
		if report.Options.IncludePuncts {
			data.PunctShift = &shifts.Puncts
		}
		if showLog {
			for _, p := range report.SampleEntries {
				data.Sample = append(data.Sample, TransformPairData{
					From: string(p.From),
					To:   string(p.To),
				})
			}
		}
		NewJSONResponse(command, data).Print()
		return
	}

	if args.Quiet {
		return
	}

	verb := "Enciphered"
	if report.Mode == cipher.ModeDecipher {
		verb = "Deciphered"
	}
	fmt.Printf("%s %s %s %s (%d chars in %s)\n",
		RenderConditional(SuccessStyle, verb),
		report.InputPath,
		RenderConditional(DimStyle, "->"),
		report.OutputPath,
		report.CharsProcessed,
		report.Duration.Round(time.Millisecond))

	if showLog {
		displayRunLog(report)
	}
}

// displayRunLog prints the detailed run information: the reduced shift for
// each participating alphabet, a sample of the substitution mapping, and
// the character count.
func displayRunLog(report *cipher.Report) {
	fmt.Println()
	fmt.Println(RenderConditional(SectionStyle, "Run Details"))
	fmt.Println(RenderSeparator(40))

	fmt.Printf("%s %s\n", RenderLabel("Mode:"), RenderConditional(ValueStyle, report.Mode.String()))
	fmt.Printf("%s %d\n", RenderLabel("Shift amount:"), report.Options.ShiftAmount)
	fmt.Printf("%s %d\n", RenderLabel("Letter shift:"), report.Shifts.Letters)
	if report.Options.IncludeDigits {
		fmt.Printf("%s %d\n", RenderLabel("Digit shift:"), report.Shifts.Digits)
	} else {
		fmt.Printf("%s %s\n", RenderLabel("Digit shift:"), RenderConditional(DimStyle, "(not shifted)"))
	}
	if report.Options.IncludePuncts {
		fmt.Printf("%s %d\n", RenderLabel("Punct shift:"), report.Shifts.Puncts)
	} else {
		fmt.Printf("%s %s\n", RenderLabel("Punct shift:"), RenderConditional(DimStyle, "(not shifted)"))
	}

	if len(report.SampleEntries) > 0 {
		fmt.Println()
		fmt.Println(RenderConditional(SectionStyle, "Mapping Sample"))
		for _, p := range report.SampleEntries {
			fmt.Printf("  %c %s %c\n", p.From, RenderConditional(DimStyle, "->"), p.To)
		}
	}

	fmt.Println()
	fmt.Printf("Read %d characters from the input file.\n", report.CharsProcessed)
}
