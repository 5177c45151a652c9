// json_output.go - JSON output support for scripting and pipelines.
//
// Provides a standardized JSON envelope for all shiftciph commands so
// output can be consumed by scripts without scraping styled text.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
// Human-readable messages should go to stderr when JSON mode is enabled.
func (r *JSONResponse) Print() error {
	return r.PrintTo(os.Stdout)
}

// PrintTo outputs the JSON response to the given writer.
func (r *JSONResponse) PrintTo(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// PrintCompact outputs the JSON response without indentation.
// Useful for piping to other tools or log aggregation.
func (r *JSONResponse) PrintCompact() error {
	return json.NewEncoder(os.Stdout).Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// StderrPrintf prints formatted text to stderr (for human-readable output
// in JSON mode).
func StderrPrintf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// TransformData represents the data returned by encipher and decipher.
type TransformData struct {
	Mode           string              `json:"mode"`
	Input          string              `json:"input"`
	Output         string              `json:"output"`
	ShiftAmount    int                 `json:"shift_amount"`
	LetterShift    int                 `json:"letter_shift"`
	DigitShift     *int                `json:"digit_shift,omitempty"`
	PunctShift     *int                `json:"punct_shift,omitempty"`
	CharsProcessed int64               `json:"chars_processed"`
	DurationMs     int64               `json:"duration_ms"`
	Sample         []TransformPairData `json:"sample,omitempty"`
	Text           string              `json:"text,omitempty"`
}

// TransformPairData is a single mapping entry in the sample table.
type TransformPairData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ConfigShowData represents the data returned by the config show command.
type ConfigShowData struct {
	Cipher  ConfigCipherInfo  `json:"cipher"`
	Output  ConfigOutputInfo  `json:"output"`
	History ConfigHistoryInfo `json:"history"`
	UI      ConfigUIInfo      `json:"ui"`
	Path    string            `json:"config_path"`
}

// ConfigCipherInfo contains cipher defaults.
type ConfigCipherInfo struct {
	ShiftAmount int  `json:"shift_amount"`
	ShiftDigits bool `json:"shift_digits"`
	ShiftPuncts bool `json:"shift_puncts"`
}

// ConfigOutputInfo contains output naming configuration.
type ConfigOutputInfo struct {
	EncipherSuffix string `json:"encipher_suffix"`
	DecipherSuffix string `json:"decipher_suffix"`
}

// ConfigHistoryInfo contains history configuration.
type ConfigHistoryInfo struct {
	Enabled    bool   `json:"enabled"`
	Path       string `json:"path"`
	MaxEntries int    `json:"max_entries"`
}

// ConfigUIInfo contains UI configuration.
type ConfigUIInfo struct {
	Color bool `json:"color"`
}

// HistoryListData represents the data returned by history list.
type HistoryListData struct {
	Runs  []HistoryRunData `json:"runs"`
	Count int              `json:"count"`
}

// HistoryRunData represents a single recorded run.
type HistoryRunData struct {
	ID             string `json:"id"`
	Mode           string `json:"mode"`
	Input          string `json:"input"`
	Output         string `json:"output"`
	ShiftAmount    int    `json:"shift_amount"`
	CharsProcessed int64  `json:"chars_processed"`
	DurationMs     int64  `json:"duration_ms"`
	CreatedAt      string `json:"created_at"`
}

// HistoryStatsData represents the data returned by history stats.
type HistoryStatsData struct {
	TotalRuns      int64  `json:"total_runs"`
	EncipherRuns   int64  `json:"encipher_runs"`
	DecipherRuns   int64  `json:"decipher_runs"`
	CharsProcessed int64  `json:"chars_processed"`
	FirstRun       string `json:"first_run,omitempty"`
	LastRun        string `json:"last_run,omitempty"`
}
