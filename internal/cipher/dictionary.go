// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// dictionary.go - Cipher mapping construction.
//
// The mapping is built once per run from the resolved options and is
// read-only afterwards. Enciphering and deciphering share the identical
// construction; the only difference is the direction of each pair.
package cipher

import "fmt"

// =============================================================================
// MODE
// =============================================================================

// Mode selects the direction of the cipher mapping.
type Mode int

const (
	// ModeEncipher maps plain characters to shifted characters.
	ModeEncipher Mode = iota
	// ModeDecipher maps shifted characters back to plain characters.
	ModeDecipher
)

// String returns the human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeEncipher:
		return "encipher"
	case ModeDecipher:
		return "decipher"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options carries the resolved cipher configuration for one run.
//
// Uppercase and lowercase letters always participate in the mapping.
// Digits and punctuation participate only when their toggles are set;
// a disabled class contributes no entries and its characters pass
// through the transform unchanged.
type Options struct {
	// ShiftAmount is the user-supplied signed shift. It may be negative
	// or exceed any alphabet length; reduction happens per alphabet.
	ShiftAmount int

	// IncludeDigits enables substitution of the digit characters.
	IncludeDigits bool

	// IncludePuncts enables substitution of the punctuation characters.
	IncludePuncts bool
}

// ReducedShifts holds the per-alphabet reduced shift values for one run.
// Disabled classes report zero.
type ReducedShifts struct {
	Letters int `json:"letters"`
	Digits  int `json:"digits"`
	Puncts  int `json:"puncts"`
}

// Reduced computes the per-alphabet reduced shifts for the options.
// Both letter cases rotate by the same value since they share length 26.
func (o Options) Reduced() ReducedShifts {
	rs := ReducedShifts{
		Letters: Reduce(o.ShiftAmount, LetterCount),
	}
	if o.IncludeDigits {
		rs.Digits = Reduce(o.ShiftAmount, DigitCount)
	}
	if o.IncludePuncts {
		rs.Puncts = Reduce(o.ShiftAmount, PunctCount)
	}
	return rs
}

// =============================================================================
// MAPPING
// =============================================================================

// Mapping is the character substitution table. Keys are exactly the
// characters of the enabled alphabets; within each alphabet the mapping
// is a bijection and never crosses into another alphabet.
type Mapping map[byte]byte

// BuildMapping constructs the substitution table for the given mode and
// options. Building is deterministic: the same inputs always produce an
// identical mapping.
func BuildMapping(mode Mode, opts Options) Mapping {
	shifts := opts.Reduced()

	size := 2 * LetterCount
	if opts.IncludeDigits {
		size += DigitCount
	}
	if opts.IncludePuncts {
		size += PunctCount
	}

	m := make(Mapping, size)
	m.addAlphabet(mode, Upper, shifts.Letters)
	m.addAlphabet(mode, Lower, shifts.Letters)
	if opts.IncludeDigits {
		m.addAlphabet(mode, Digits, shifts.Digits)
	}
	if opts.IncludePuncts {
		m.addAlphabet(mode, Puncts, shifts.Puncts)
	}
	return m
}

// addAlphabet inserts the pairs for one alphabet rotated left by k.
// Encipher stores original->rotated, decipher the inverse.
func (m Mapping) addAlphabet(mode Mode, alphabet []byte, k int) {
	rotated := rotateLeft(alphabet, k)
	for i := range alphabet {
		if mode == ModeDecipher {
			m[rotated[i]] = alphabet[i]
		} else {
			m[alphabet[i]] = rotated[i]
		}
	}
}

// rotateLeft returns a rotated copy of the alphabet: out[i] = alphabet[(i+k) mod n].
// The element at position k becomes position 0.
func rotateLeft(alphabet []byte, k int) []byte {
	n := len(alphabet)
	out := make([]byte, n)
	for i := range alphabet {
		out[i] = alphabet[(i+k)%n]
	}
	return out
}

// Pair is one substitution entry, used for diagnostic samples.
type Pair struct {
	From byte `json:"from"`
	To   byte `json:"to"`
}

// Sample returns up to n mapping entries in byte order starting at 'A'.
// Both modes key the full uppercase alphabet, so the sample is stable
// across runs and modes.
func (m Mapping) Sample(n int) []Pair {
	pairs := make([]Pair, 0, n)
	for c := byte('A'); c <= 'Z' && len(pairs) < n; c++ {
		if to, ok := m[c]; ok {
			pairs = append(pairs, Pair{From: c, To: to})
		}
	}
	return pairs
}
