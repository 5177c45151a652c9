// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jeranaias/shiftciph/internal/cipher"
	"github.com/jeranaias/shiftciph/internal/config"
)

// =============================================================================
// FLAG EXPANSION TESTS
// =============================================================================

func TestExpandBundles(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "combined booleans",
			in:   []string{"-np"},
			want: []string{"-n", "-p"},
		},
		{
			name: "three way bundle",
			in:   []string{"-npl"},
			want: []string{"-n", "-p", "-l"},
		},
		{
			name: "single short flag untouched",
			in:   []string{"-n"},
			want: []string{"-n"},
		},
		{
			name: "long flag untouched",
			in:   []string{"--shift-nums"},
			want: []string{"--shift-nums"},
		},
		{
			name: "value flag not expanded",
			in:   []string{"-i", "notes.txt"},
			want: []string{"-i", "notes.txt"},
		},
		{
			name: "unknown chars left for validation",
			in:   []string{"-nx"},
			want: []string{"-nx"},
		},
		{
			name: "negative shift untouched",
			in:   []string{"-s", "-3"},
			want: []string{"-s", "-3"},
		},
		{
			name: "mixed",
			in:   []string{"-i", "a.txt", "-np", "-s", "13"},
			want: []string{"-i", "a.txt", "-n", "-p", "-s", "13"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandBundles(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expandBundles(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateTransformFlags(t *testing.T) {
	valid := [][]string{
		{"-i", "a.txt", "-o", "b.txt", "-s", "13", "-n", "-p", "-l"},
		{"--ifile", "a.txt", "--shift-amount=-3", "--shift-all"},
		{"-i", "-"},
		{"-t", "Hello"},
	}
	for _, argv := range valid {
		p := NewArgParser(expandBundles(argv))
		if err := validateTransformFlags(p); err != nil {
			t.Errorf("validateTransformFlags(%v) = %v, want nil", argv, err)
		}
	}

	invalid := [][]string{
		{"--frobnicate"},
		{"-x"},
		{"-nx"},
		{"--shift-everything=yes"},
	}
	for _, argv := range invalid {
		p := NewArgParser(expandBundles(argv))
		err := validateTransformFlags(p)
		if err == nil {
			t.Errorf("validateTransformFlags(%v) should fail", argv)
			continue
		}
		if GetExitCode(err) != ExitUsage {
			t.Errorf("exit code for %v = %d, want %d", argv, GetExitCode(err), ExitUsage)
		}
	}
}

// =============================================================================
// OPTION RESOLUTION TESTS
// =============================================================================

func TestResolveOptions(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name string
		argv []string
		want cipher.Options
	}{
		{
			name: "defaults from config",
			argv: nil,
			want: cipher.Options{ShiftAmount: 5},
		},
		{
			name: "explicit shift",
			argv: []string{"-s", "13"},
			want: cipher.Options{ShiftAmount: 13},
		},
		{
			name: "negative shift",
			argv: []string{"-s", "-3"},
			want: cipher.Options{ShiftAmount: -3},
		},
		{
			name: "digits toggle",
			argv: []string{"-n"},
			want: cipher.Options{ShiftAmount: 5, IncludeDigits: true},
		},
		{
			name: "puncts toggle",
			argv: []string{"--shift-puncts"},
			want: cipher.Options{ShiftAmount: 5, IncludePuncts: true},
		},
		{
			name: "shift all",
			argv: []string{"-a"},
			want: cipher.Options{ShiftAmount: 5, IncludeDigits: true, IncludePuncts: true},
		},
		{
			name: "bundle",
			argv: []string{"-np", "-s", "7"},
			want: cipher.Options{ShiftAmount: 7, IncludeDigits: true, IncludePuncts: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(expandBundles(tt.argv))
			got, err := resolveOptions(p, cfg)
			if err != nil {
				t.Fatalf("resolveOptions: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOptions(%v) = %+v, want %+v", tt.argv, got, tt.want)
			}
		})
	}
}

func TestResolveOptions_InvalidShift(t *testing.T) {
	p := NewArgParser([]string{"-s", "abc"})
	_, err := resolveOptions(p, config.Default())
	if err == nil {
		t.Fatal("expected error for non-integer shift")
	}
	if GetExitCode(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsage)
	}
}

func TestOutputSuffix(t *testing.T) {
	cfg := config.Default()

	if got := outputSuffix(cipher.ModeEncipher, cfg); got != ".ciph" {
		t.Errorf("encipher suffix = %q, want %q", got, ".ciph")
	}
	if got := outputSuffix(cipher.ModeDecipher, cfg); got != ".dec" {
		t.Errorf("decipher suffix = %q, want %q", got, ".dec")
	}
}

// =============================================================================
// FILE TRANSFORM TESTS
// =============================================================================

func TestTransformFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.txt")
	output := filepath.Join(dir, "notes.txt.ciph")

	if err := os.WriteFile(input, []byte("Hello, World!\n"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := cipher.Options{ShiftAmount: 5}
	mapping := cipher.BuildMapping(cipher.ModeEncipher, opts)

	report, err := transformFile(cipher.ModeEncipher, opts, mapping, input, output)
	if err != nil {
		t.Fatalf("transformFile: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "Mjqqt, Btwqi!\n" {
		t.Errorf("output = %q, want %q", data, "Mjqqt, Btwqi!\n")
	}

	if report.CharsProcessed != 13 {
		t.Errorf("CharsProcessed = %d, want 13", report.CharsProcessed)
	}
	if report.InputPath != input || report.OutputPath != output {
		t.Errorf("paths = %q -> %q, want %q -> %q",
			report.InputPath, report.OutputPath, input, output)
	}
	if len(report.SampleEntries) != 10 {
		t.Errorf("sample entries = %d, want 10", len(report.SampleEntries))
	}
}

func TestTransformFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "missing.txt")

	opts := cipher.Options{ShiftAmount: 5}
	mapping := cipher.BuildMapping(cipher.ModeEncipher, opts)

	_, err := transformFile(cipher.ModeEncipher, opts, mapping, input, input+".ciph")
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if GetExitCode(err) != ExitNotFound {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitNotFound)
	}
}

func TestTransformFile_DirectoryInput(t *testing.T) {
	dir := t.TempDir()

	opts := cipher.Options{ShiftAmount: 5}
	mapping := cipher.BuildMapping(cipher.ModeEncipher, opts)

	_, err := transformFile(cipher.ModeEncipher, opts, mapping, dir, filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("expected error for directory input")
	}
	if GetExitCode(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsage)
	}
}

func TestTransformFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "msg.txt")
	ciphered := filepath.Join(dir, "msg.txt.ciph")
	restored := filepath.Join(dir, "msg.txt.dec")

	original := "The quick brown fox jumps over 13 lazy dogs!\nSecond line.\n"
	if err := os.WriteFile(input, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	opts := cipher.Options{ShiftAmount: -3, IncludeDigits: true, IncludePuncts: true}

	enc := cipher.BuildMapping(cipher.ModeEncipher, opts)
	if _, err := transformFile(cipher.ModeEncipher, opts, enc, input, ciphered); err != nil {
		t.Fatalf("encipher: %v", err)
	}

	dec := cipher.BuildMapping(cipher.ModeDecipher, opts)
	if _, err := transformFile(cipher.ModeDecipher, opts, dec, ciphered, restored); err != nil {
		t.Fatalf("decipher: %v", err)
	}

	data, err := os.ReadFile(restored)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Errorf("round trip = %q, want %q", data, original)
	}
}
