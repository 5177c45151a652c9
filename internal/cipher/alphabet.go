// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// alphabet.go - Fixed alphabet tables for the shift cipher.
//
// Each table is an ordered sequence of distinct single-byte characters.
// The tables are defined once and never mutated; every mapping is built
// from rotated copies of them.
package cipher

// Alphabet lengths. These are the moduli used for shift reduction.
const (
	LetterCount = 26
	DigitCount  = 10
	PunctCount  = 32
)

var (
	// Upper is the uppercase English alphabet in order.
	Upper = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

	// Lower is the lowercase English alphabet in order.
	Lower = []byte("abcdefghijklmnopqrstuvwxyz")

	// Digits are the decimal digit characters in order.
	Digits = []byte("0123456789")

	// Puncts are the punctuation characters in ASCII order.
	Puncts = []byte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~")
)
