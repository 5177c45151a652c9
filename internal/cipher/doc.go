// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cipher implements the circular shift-cipher core for shiftciph.
//
// The cipher is a generalized Caesar substitution over four fixed alphabets:
// uppercase letters, lowercase letters, digits, and punctuation. A signed
// shift amount is reduced per alphabet (letters mod 26, digits mod 10,
// punctuation mod 32), each enabled alphabet is circularly rotated by its
// reduced shift, and the original/rotated pairs form a one-to-one substitution
// mapping. Enciphering maps plain characters to shifted ones; deciphering
// uses the exact inverse relation, so the two modes round-trip by
// construction.
//
// # Key Types
//
//   - Options: shift amount plus the digit/punctuation toggles
//   - Mode: ModeEncipher or ModeDecipher (direction of the mapping)
//   - Mapping: the substitution table, built once per run and read-only after
//   - Report: diagnostics snapshot of a completed transform
//
// # Usage
//
//	m := cipher.BuildMapping(cipher.ModeEncipher, cipher.Options{ShiftAmount: 5})
//	n, err := cipher.Transform(in, out, m)
//
// Characters outside the enabled alphabets (spaces, control bytes, disabled
// classes) pass through unchanged. The transform is single-pass and
// line-buffered; it never fails on character values, only on I/O.
//
// This is a monoalphabetic substitution and provides no cryptographic
// security whatsoever.
package cipher
