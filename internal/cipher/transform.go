// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// transform.go - Line-by-line substitution engine.
package cipher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
)

// lineChunkSize is the read buffer size. Lines longer than one chunk are
// processed in pieces, so line length never bounds the transform; memory
// stays at one chunk regardless of input shape.
const lineChunkSize = 64 * 1024

// Transform applies the mapping to the input line-by-line and writes the
// result to w. It returns the number of characters processed, which excludes
// line terminators; a terminator is re-emitted once per output line. A CRLF
// terminator is normalized to a single newline, and a final line without a
// terminator still receives one.
//
// Characters without a mapping entry are written unchanged, so the transform
// is total over all byte values and cannot fail on content. The only error
// sources are the reader and the writer.
func Transform(r io.Reader, w io.Writer, m Mapping) (int64, error) {
	br := bufio.NewReaderSize(r, lineChunkSize)
	bw := bufio.NewWriter(w)

	var processed int64
	var midLine bool // current line has content but no terminator yet
	var heldCR bool  // chunk ended in '\r'; it may be half of a CRLF

	writeByte := func(c byte) error {
		if out, ok := m[c]; ok {
			c = out
		}
		return bw.WriteByte(c)
	}

	for {
		chunk, err := br.ReadSlice('\n')

		// A '\r' held back from the previous chunk is a terminator when
		// followed by '\n' or EOF; otherwise it is ordinary content.
		if heldCR {
			heldCR = false
			if len(chunk) > 0 && chunk[0] != '\n' {
				if werr := writeByte('\r'); werr != nil {
					return processed, fmt.Errorf("write output: %w", werr)
				}
				processed++
			}
		}

		if len(chunk) > 0 {
			data := chunk
			terminated := data[len(data)-1] == '\n'
			if terminated {
				data = data[:len(data)-1]
				if len(data) > 0 && data[len(data)-1] == '\r' {
					data = data[:len(data)-1]
				}
			} else if data[len(data)-1] == '\r' {
				// Mid-line or EOF chunk ending in '\r': defer the byte
				// until the next chunk settles whether it terminates.
				data = data[:len(data)-1]
				heldCR = true
			}

			for _, c := range data {
				if werr := writeByte(c); werr != nil {
					return processed, fmt.Errorf("write output: %w", werr)
				}
				processed++
			}

			if terminated {
				if werr := bw.WriteByte('\n'); werr != nil {
					return processed, fmt.Errorf("write output: %w", werr)
				}
				midLine = false
			} else if len(data) > 0 || heldCR {
				midLine = true
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return processed, fmt.Errorf("read input: %w", err)
		}
	}

	if midLine {
		if err := bw.WriteByte('\n'); err != nil {
			return processed, fmt.Errorf("write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return processed, fmt.Errorf("write output: %w", err)
	}
	return processed, nil
}

// Report is a read-only snapshot of a completed transform, consumed by the
// diagnostics display and the run history. The core produces it; nothing in
// the core depends on anyone reading it.
type Report struct {
	Mode           Mode          `json:"-"`
	Options        Options       `json:"-"`
	Shifts         ReducedShifts `json:"shifts"`
	InputPath      string        `json:"input_path"`
	OutputPath     string        `json:"output_path"`
	CharsProcessed int64         `json:"chars_processed"`
	Duration       time.Duration `json:"-"`
	SampleEntries  []Pair        `json:"sample,omitempty"`
}
