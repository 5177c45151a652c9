// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The config command.
//
// Command: config [subcommand]
// Aliases: cfg
//
// Subcommands:
//   show (default)      Show current configuration
//   set <key> <value>   Set a configuration value and save
//   path                Show the configuration file location
//
// Keys:
//   shift_amount, shift_digits, shift_puncts, encipher_suffix,
//   decipher_suffix, history_enabled, history_max_entries, color
//
// Examples:
//   shiftciph config
//   shiftciph config show --json
//   shiftciph config set shift_amount 13
//   shiftciph config set shift_digits true
//   shiftciph config path

package cli

import (
	"fmt"
	"strconv"

	"github.com/jeranaias/shiftciph/internal/config"
)

// HandleConfig handles the "shiftciph config" CLI command.
func HandleConfig(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "show", "":
		return handleConfigShow(args)
	case "set":
		return handleConfigSet(parser, args)
	case "path":
		return handleConfigPath(args)
	default:
		return &ValidationError{
			Field:   "subcommand",
			Value:   parser.Subcommand(),
			Message: "expected show, set, or path",
		}
	}
}

// =============================================================================
// SHOW
// =============================================================================

func handleConfigShow(args Args) error {
	cfg := config.Global()

	path, _ := config.ConfigPathTOML()
	histPath, _ := cfg.HistoryPath()

	if args.JSON {
		data := ConfigShowData{
			Cipher: ConfigCipherInfo{
				ShiftAmount: cfg.Cipher.ShiftAmount,
				ShiftDigits: cfg.Cipher.ShiftDigits,
				ShiftPuncts: cfg.Cipher.ShiftPuncts,
			},
			Output: ConfigOutputInfo{
				EncipherSuffix: cfg.Output.EncipherSuffix,
				DecipherSuffix: cfg.Output.DecipherSuffix,
			},
			History: ConfigHistoryInfo{
				Enabled:    cfg.History.Enabled,
				Path:       histPath,
				MaxEntries: cfg.History.MaxEntries,
			},
			UI:   ConfigUIInfo{Color: cfg.UI.Color},
			Path: path,
		}
		return NewJSONResponse("config_show", data).Print()
	}

	fmt.Println(RenderConditional(TitleStyle, "Shiftciph Configuration"))

	fmt.Println(RenderConditional(SectionStyle, "Cipher"))
	fmt.Printf("%s %d\n", RenderLabel("shift_amount:"), cfg.Cipher.ShiftAmount)
	fmt.Printf("%s %t\n", RenderLabel("shift_digits:"), cfg.Cipher.ShiftDigits)
	fmt.Printf("%s %t\n", RenderLabel("shift_puncts:"), cfg.Cipher.ShiftPuncts)

	fmt.Println(RenderConditional(SectionStyle, "Output"))
	fmt.Printf("%s %s\n", RenderLabel("encipher_suffix:"), cfg.Output.EncipherSuffix)
	fmt.Printf("%s %s\n", RenderLabel("decipher_suffix:"), cfg.Output.DecipherSuffix)

	fmt.Println(RenderConditional(SectionStyle, "History"))
	fmt.Printf("%s %t\n", RenderLabel("history_enabled:"), cfg.History.Enabled)
	fmt.Printf("%s %d\n", RenderLabel("history_max_entries:"), cfg.History.MaxEntries)
	fmt.Printf("%s %s\n", RenderLabel("history_path:"), histPath)

	fmt.Println(RenderConditional(SectionStyle, "UI"))
	fmt.Printf("%s %t\n", RenderLabel("color:"), cfg.UI.Color)

	fmt.Println()
	fmt.Printf("%s %s\n", RenderLabel("Config file:"), RenderConditional(DimStyle, path))

	return nil
}

// =============================================================================
// SET
// =============================================================================

func handleConfigSet(parser *ArgParser, args Args) error {
	key := parser.Positional(1)
	value := parser.Positional(2)

	if key == "" || value == "" {
		return &ValidationError{
			Field:   "arguments",
			Message: "usage: shiftciph config set <key> <value>",
		}
	}

	cfg := config.Global()

	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return &ConfigError{Message: "invalid configuration", Err: err}
	}

	if err := config.Save(cfg); err != nil {
		return &ConfigError{Message: "failed to save configuration", Err: err}
	}
	config.SetGlobal(cfg)

	if args.JSON {
		return NewJSONResponse("config_set", map[string]string{
			"key":   key,
			"value": value,
		}).Print()
	}

	fmt.Printf("%s %s = %s\n", RenderConditional(SuccessStyle, "Set"), key, value)
	return nil
}

// applyConfigValue parses value for the given key and writes it into cfg.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "shift_amount":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Message: "must be an integer"}
		}
		cfg.Cipher.ShiftAmount = n

	case "shift_digits":
		b, err := ParseBoolString(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Message: "must be a boolean"}
		}
		cfg.Cipher.ShiftDigits = b

	case "shift_puncts":
		b, err := ParseBoolString(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Message: "must be a boolean"}
		}
		cfg.Cipher.ShiftPuncts = b

	case "encipher_suffix":
		cfg.Output.EncipherSuffix = value

	case "decipher_suffix":
		cfg.Output.DecipherSuffix = value

	case "history_enabled":
		b, err := ParseBoolString(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Message: "must be a boolean"}
		}
		cfg.History.Enabled = b

	case "history_max_entries":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return &ValidationError{Field: key, Value: value, Message: "must be a positive integer"}
		}
		cfg.History.MaxEntries = n

	case "color":
		b, err := ParseBoolString(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Message: "must be a boolean"}
		}
		cfg.UI.Color = b

	default:
		return &NotFoundError{Kind: "config key", Name: key}
	}

	return nil
}

// =============================================================================
// PATH
// =============================================================================

func handleConfigPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return &ConfigError{Message: "failed to resolve config path", Err: err}
	}

	if args.JSON {
		return NewJSONResponse("config_path", map[string]string{"path": path}).Print()
	}

	fmt.Println(path)
	return nil
}
