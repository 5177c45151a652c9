// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cipher

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransform_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		opts      Options
		input     string
		want      string
		wantCount int64
	}{
		{
			name:      "encipher shift 5 letters only",
			mode:      ModeEncipher,
			opts:      Options{ShiftAmount: 5},
			input:     "Hello, World!\n",
			want:      "Mjqqt, Btwqi!\n",
			wantCount: 13,
		},
		{
			name:      "decipher shift 5 letters only",
			mode:      ModeDecipher,
			opts:      Options{ShiftAmount: 5},
			input:     "Mjqqt, Btwqi!\n",
			want:      "Hello, World!\n",
			wantCount: 13,
		},
		{
			name:      "negative shift with digits",
			mode:      ModeEncipher,
			opts:      Options{ShiftAmount: -3, IncludeDigits: true},
			input:     "Test123\n",
			want:      "Qbpq890\n",
			wantCount: 7,
		},
		{
			name:      "full rotation is identity",
			mode:      ModeEncipher,
			opts:      Options{ShiftAmount: 26},
			input:     "Hello, World!\n",
			want:      "Hello, World!\n",
			wantCount: 13,
		},
		{
			name:      "multiple lines",
			mode:      ModeEncipher,
			opts:      Options{ShiftAmount: 1},
			input:     "ab\ncd\n",
			want:      "bc\nde\n",
			wantCount: 4,
		},
		{
			name:      "empty input",
			mode:      ModeEncipher,
			opts:      Options{ShiftAmount: 5},
			input:     "",
			want:      "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildMapping(tt.mode, tt.opts)

			var out bytes.Buffer
			n, err := Transform(strings.NewReader(tt.input), &out, m)
			if err != nil {
				t.Fatalf("Transform() error: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
			if n != tt.wantCount {
				t.Errorf("chars processed = %d, want %d", n, tt.wantCount)
			}
		})
	}
}

// TestTransform_CharCount checks that the counter equals the sum of all line
// lengths with terminators excluded.
func TestTransform_CharCount(t *testing.T) {
	lines := []string{"one", "twenty two", "", "l a s t"}
	input := strings.Join(lines, "\n") + "\n"

	var want int64
	for _, l := range lines {
		want += int64(len(l))
	}

	m := BuildMapping(ModeEncipher, Options{ShiftAmount: 3})
	var out bytes.Buffer
	n, err := Transform(strings.NewReader(input), &out, m)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if n != want {
		t.Errorf("chars processed = %d, want %d", n, want)
	}
}

// TestTransform_PassThrough feeds every byte value outside the letter
// alphabets and expects it back unchanged.
func TestTransform_PassThrough(t *testing.T) {
	m := BuildMapping(ModeEncipher, Options{ShiftAmount: 5})

	var input bytes.Buffer
	for b := 0; b < 256; b++ {
		c := byte(b)
		if c == '\n' || c == '\r' {
			continue
		}
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			continue
		}
		input.WriteByte(c)
	}
	want := input.String() + "\n"

	var out bytes.Buffer
	if _, err := Transform(bytes.NewReader(input.Bytes()), &out, m); err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if out.String() != want {
		t.Error("characters outside enabled alphabets must pass through unchanged")
	}
}

// TestTransform_RoundTrip enciphers then deciphers across a spread of shift
// amounts and class toggles and expects the original text back.
func TestTransform_RoundTrip(t *testing.T) {
	input := "The quick brown fox jumps over 13 lazy dogs!\n(All 26 letters, some digits, some punctuation.)\n"

	for _, opts := range []Options{
		{ShiftAmount: 5},
		{ShiftAmount: -3, IncludeDigits: true},
		{ShiftAmount: 26},
		{ShiftAmount: 99, IncludeDigits: true, IncludePuncts: true},
		{ShiftAmount: -100, IncludePuncts: true},
	} {
		enc := BuildMapping(ModeEncipher, opts)
		dec := BuildMapping(ModeDecipher, opts)

		var ciphered bytes.Buffer
		nEnc, err := Transform(strings.NewReader(input), &ciphered, enc)
		require.NoError(t, err, "encipher shift %d", opts.ShiftAmount)

		var restored bytes.Buffer
		nDec, err := Transform(bytes.NewReader(ciphered.Bytes()), &restored, dec)
		require.NoError(t, err, "decipher shift %d", opts.ShiftAmount)

		require.Equal(t, input, restored.String(), "round trip with shift %d", opts.ShiftAmount)
		require.Equal(t, nEnc, nDec, "both directions must count the same characters")
	}
}

func TestTransform_LongSingleLine(t *testing.T) {
	m := BuildMapping(ModeEncipher, Options{ShiftAmount: 5})

	// One line spanning many read chunks must transform like any other.
	size := 3*lineChunkSize + 17
	input := bytes.Repeat([]byte{'A'}, size)

	var out bytes.Buffer
	n, err := Transform(bytes.NewReader(input), &out, m)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if n != int64(size) {
		t.Errorf("chars processed = %d, want %d", n, size)
	}

	want := append(bytes.Repeat([]byte{'F'}, size), '\n')
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("output mismatch: got %d bytes starting %q, want %d bytes starting %q",
			out.Len(), out.Bytes()[:8], len(want), want[:8])
	}
}

func TestTransform_CRLFAtChunkBoundary(t *testing.T) {
	m := BuildMapping(ModeEncipher, Options{ShiftAmount: 5})

	// Place the '\r' of a CRLF pair exactly at the end of a read chunk so
	// the terminator is split across reads.
	input := append(bytes.Repeat([]byte{'A'}, lineChunkSize-1), '\r', '\n', 'B', '\n')

	var out bytes.Buffer
	n, err := Transform(bytes.NewReader(input), &out, m)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if want := int64(lineChunkSize - 1 + 1); n != want {
		t.Errorf("chars processed = %d, want %d", n, want)
	}

	want := append(bytes.Repeat([]byte{'F'}, lineChunkSize-1), '\n', 'G', '\n')
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("CRLF at chunk boundary not normalized: got tail %q", out.Bytes()[out.Len()-4:])
	}
}

func TestTransform_TrailingCarriageReturn(t *testing.T) {
	m := BuildMapping(ModeEncipher, Options{ShiftAmount: 5})

	var out bytes.Buffer
	n, err := Transform(strings.NewReader("Hi\r"), &out, m)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if n != 2 {
		t.Errorf("chars processed = %d, want 2", n)
	}
	if out.String() != "Mn\n" {
		t.Errorf("output = %q, want %q", out.String(), "Mn\n")
	}
}

func TestNewReader(t *testing.T) {
	m := BuildMapping(ModeEncipher, Options{ShiftAmount: 5})

	r := NewReader(strings.NewReader("Hello, World!"), m)
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if string(out) != "Mjqqt, Btwqi!" {
		t.Errorf("streamed output = %q, want %q", out, "Mjqqt, Btwqi!")
	}
}

func TestNewWriter(t *testing.T) {
	m := BuildMapping(ModeEncipher, Options{ShiftAmount: 5})

	var buf bytes.Buffer
	w := NewWriter(&buf, m)
	if _, err := w.Write([]byte("Hello, World!")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if buf.String() != "Mjqqt, Btwqi!" {
		t.Errorf("written output = %q, want %q", buf.String(), "Mjqqt, Btwqi!")
	}
}

func TestTransformString(t *testing.T) {
	m := BuildMapping(ModeEncipher, Options{ShiftAmount: 5})

	out, n := TransformString("Hello,\nWorld!", m)
	if out != "Mjqqt,\nBtwqi!" {
		t.Errorf("TransformString() = %q", out)
	}
	// Newline is excluded from the count.
	if n != 12 {
		t.Errorf("chars processed = %d, want 12", n)
	}
}
