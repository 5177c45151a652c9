// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stream.go - Streaming substitution via golang.org/x/text/transform.
//
// The line engine in transform.go owns character counting; this adapter is
// substitution-only plumbing for pipes and direct-text input, where the
// mapping rides on an ordinary byte stream.
package cipher

import (
	"io"

	"golang.org/x/text/transform"
)

// mappingTransformer applies a Mapping byte-for-byte. Substitution never
// changes lengths, so src and dst advance in lockstep.
type mappingTransformer struct {
	transform.NopResetter
	m Mapping
}

func (t mappingTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		if out, ok := t.m[src[i]]; ok {
			dst[i] = out
		} else {
			dst[i] = src[i]
		}
	}
	if n < len(src) {
		return n, n, transform.ErrShortDst
	}
	return n, n, nil
}

// Transformer returns the mapping as a transform.Transformer.
func (m Mapping) Transformer() transform.Transformer {
	return mappingTransformer{m: m}
}

// NewReader wraps r so that every byte read is substituted through the
// mapping. Used for raw stdin piping, where output is a continuous stream
// rather than a named file.
func NewReader(r io.Reader, m Mapping) io.Reader {
	return transform.NewReader(r, m.Transformer())
}

// NewWriter wraps w so that every byte written is substituted through the
// mapping before reaching w. The caller must Close the returned writer to
// flush the transform.
func NewWriter(w io.Writer, m Mapping) io.WriteCloser {
	return transform.NewWriter(w, m.Transformer())
}

// TransformString substitutes a string in one shot. The second return value
// is the character count with line terminators excluded, matching the file
// engine's counting rule.
func TransformString(s string, m Mapping) (string, int64) {
	out, _, _ := transform.String(m.Transformer(), s)
	var processed int64
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' && s[i] != '\r' {
			processed++
		}
	}
	return out, processed
}
