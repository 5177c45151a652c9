// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - The history command.
//
// Command: history [subcommand]
// Aliases: hist, runs
//
// Subcommands:
//   list (default)      List recent runs (--limit N, default 20)
//   show <id>           Show one run; id may be a unique prefix
//   stats               Aggregate statistics across all runs
//   clear --confirm     Delete all recorded runs
//
// Examples:
//   shiftciph history
//   shiftciph history list --limit 10
//   shiftciph history show 3f2a
//   shiftciph history stats --json
//   shiftciph history clear --confirm

package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/shiftciph/internal/config"
	"github.com/jeranaias/shiftciph/internal/history"
)

// defaultHistoryLimit bounds "history list" output when --limit is absent.
const defaultHistoryLimit = 20

// HandleHistory handles the "shiftciph history" CLI command.
func HandleHistory(args Args) error {
	parser := NewArgParser(args.Raw)

	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	switch parser.Subcommand() {
	case "list", "":
		return handleHistoryList(store, parser, args)
	case "show":
		return handleHistoryShow(store, parser, args)
	case "stats":
		return handleHistoryStats(store, args)
	case "clear":
		return handleHistoryClear(store, parser, args)
	default:
		return &ValidationError{
			Field:   "subcommand",
			Value:   parser.Subcommand(),
			Message: "expected list, show, stats, or clear",
		}
	}
}

// openHistoryStore opens the configured run log.
func openHistoryStore() (*history.Store, error) {
	cfg := config.Global()

	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, &ConfigError{Message: "failed to resolve history path", Err: err}
	}

	store, err := history.Open(path, cfg.History.MaxEntries)
	if err != nil {
		return nil, WrapError("history", err)
	}
	return store, nil
}

// =============================================================================
// LIST
// =============================================================================

func handleHistoryList(store *history.Store, parser *ArgParser, args Args) error {
	limit := parser.FlagIntOrDefault("limit", defaultHistoryLimit)
	if limit < 1 {
		return &ValidationError{
			Field:   "--limit",
			Value:   parser.Flag("limit"),
			Message: "must be a positive integer",
		}
	}

	runs, err := store.List(limit)
	if err != nil {
		return WrapError("history", err)
	}

	if args.JSON {
		data := HistoryListData{Count: len(runs)}
		for _, r := range runs {
			data.Runs = append(data.Runs, historyRunData(&r))
		}
		return NewJSONResponse("history_list", data).Print()
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Println(RenderConditional(TitleStyle, "Run History"))
	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("%s  %-8s  %-24s %s %-24s  %6d chars  %s\n",
			RenderConditional(HighlightStyle, id),
			r.Mode,
			r.InputPath,
			RenderConditional(DimStyle, "->"),
			r.OutputPath,
			r.CharsProcessed,
			RenderConditional(DimStyle, r.CreatedAt.Local().Format("2006-01-02 15:04:05")))
	}
	return nil
}

// =============================================================================
// SHOW
// =============================================================================

func handleHistoryShow(store *history.Store, parser *ArgParser, args Args) error {
	id := parser.Positional(1)
	if id == "" {
		return &ValidationError{
			Field:   "arguments",
			Message: "usage: shiftciph history show <id>",
		}
	}

	run, err := store.Get(id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return &NotFoundError{Kind: "run", Name: id}
		}
		if errors.Is(err, history.ErrAmbiguous) {
			return &ValidationError{
				Field:   "id",
				Value:   id,
				Message: "prefix matches more than one run; use more characters",
			}
		}
		return WrapError("history", err)
	}

	if args.JSON {
		return NewJSONResponse("history_show", historyRunData(run)).Print()
	}

	fmt.Println(RenderConditional(TitleStyle, "Run "+run.ID))
	fmt.Printf("%s %s\n", RenderLabel("Mode:"), run.Mode)
	fmt.Printf("%s %s\n", RenderLabel("Input:"), run.InputPath)
	fmt.Printf("%s %s\n", RenderLabel("Output:"), run.OutputPath)
	fmt.Printf("%s %d\n", RenderLabel("Shift amount:"), run.ShiftAmount)
	fmt.Printf("%s %d\n", RenderLabel("Letter shift:"), run.LetterShift)
	if run.IncludeDigits {
		fmt.Printf("%s %d\n", RenderLabel("Digit shift:"), run.DigitShift)
	}
	if run.IncludePuncts {
		fmt.Printf("%s %d\n", RenderLabel("Punct shift:"), run.PunctShift)
	}
	fmt.Printf("%s %d\n", RenderLabel("Characters:"), run.CharsProcessed)
	fmt.Printf("%s %dms\n", RenderLabel("Duration:"), run.DurationMs)
	fmt.Printf("%s %s\n", RenderLabel("Recorded:"), run.CreatedAt.Local().Format(time.RFC1123))
	return nil
}

// =============================================================================
// STATS
// =============================================================================

func handleHistoryStats(store *history.Store, args Args) error {
	stats, err := store.Stats()
	if err != nil {
		return WrapError("history", err)
	}

	if args.JSON {
		data := HistoryStatsData{
			TotalRuns:      int64(stats.TotalRuns),
			EncipherRuns:   int64(stats.EncipherRuns),
			DecipherRuns:   int64(stats.DecipherRuns),
			CharsProcessed: stats.CharsProcessed,
		}
		if !stats.FirstRun.IsZero() {
			data.FirstRun = stats.FirstRun.UTC().Format(time.RFC3339)
			data.LastRun = stats.LastRun.UTC().Format(time.RFC3339)
		}
		return NewJSONResponse("history_stats", data).Print()
	}

	fmt.Println(RenderConditional(TitleStyle, "Run Statistics"))
	fmt.Printf("%s %d\n", RenderLabel("Total runs:"), stats.TotalRuns)
	fmt.Printf("%s %d\n", RenderLabel("Encipher runs:"), stats.EncipherRuns)
	fmt.Printf("%s %d\n", RenderLabel("Decipher runs:"), stats.DecipherRuns)
	fmt.Printf("%s %d\n", RenderLabel("Characters:"), stats.CharsProcessed)
	if !stats.FirstRun.IsZero() {
		fmt.Printf("%s %s\n", RenderLabel("First run:"), stats.FirstRun.Local().Format(time.RFC1123))
		fmt.Printf("%s %s\n", RenderLabel("Last run:"), stats.LastRun.Local().Format(time.RFC1123))
	}
	return nil
}

// =============================================================================
// CLEAR
// =============================================================================

func handleHistoryClear(store *history.Store, parser *ArgParser, args Args) error {
	if !parser.BoolFlag("confirm") {
		return &ValidationError{
			Field:   "--confirm",
			Message: "clearing history is destructive; pass --confirm to proceed",
		}
	}

	if err := store.Clear(); err != nil {
		return WrapError("history", err)
	}

	if args.JSON {
		return NewJSONResponse("history_clear", map[string]bool{"cleared": true}).Print()
	}

	fmt.Println(RenderConditional(SuccessStyle, "History cleared."))
	return nil
}

// historyRunData converts a store run into its JSON envelope form.
func historyRunData(r *history.Run) HistoryRunData {
	return HistoryRunData{
		ID:             r.ID,
		Mode:           r.Mode,
		Input:          r.InputPath,
		Output:         r.OutputPath,
		ShiftAmount:    r.ShiftAmount,
		CharsProcessed: r.CharsProcessed,
		DurationMs:     r.DurationMs,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
