// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shift.go - Shift reduction for the cipher alphabets.
package cipher

// Reduce normalizes a signed shift amount into [0, modulus).
//
// Go's % operator keeps the sign of the dividend, so a negative shift is
// brought into range by repeated addition of the modulus instead. The result
// always satisfies 0 <= r < modulus and r == original (mod modulus).
//
// The modulus must be positive. Reduce is an internal helper and does not
// check this; every call site passes a fixed alphabet length (26, 10, or 32).
func Reduce(original, modulus int) int {
	if original < 0 {
		reduced := original
		for reduced < 0 {
			reduced += modulus
		}
		return reduced
	}
	return original % modulus
}
