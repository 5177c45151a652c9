// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cipher

import "testing"

func TestReduce(t *testing.T) {
	tests := []struct {
		name     string
		original int
		modulus  int
		want     int
	}{
		{name: "zero", original: 0, modulus: 26, want: 0},
		{name: "in range", original: 5, modulus: 26, want: 5},
		{name: "exact wrap", original: 26, modulus: 26, want: 0},
		{name: "over wrap", original: 31, modulus: 26, want: 5},
		{name: "double wrap", original: 57, modulus: 26, want: 5},
		{name: "negative small", original: -3, modulus: 26, want: 23},
		{name: "negative digits", original: -3, modulus: 10, want: 7},
		{name: "negative multiple wraps", original: -55, modulus: 26, want: 23},
		{name: "negative exact", original: -26, modulus: 26, want: 0},
		{name: "punctuation modulus", original: 37, modulus: 32, want: 5},
		{name: "negative punctuation", original: -1, modulus: 32, want: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reduce(tt.original, tt.modulus); got != tt.want {
				t.Errorf("Reduce(%d, %d) = %d, want %d", tt.original, tt.modulus, got, tt.want)
			}
		})
	}
}

// TestReduce_Invariants sweeps a range of shifts against every alphabet
// modulus and checks the two reduction invariants: the result is in
// [0, modulus) and is congruent to the input.
func TestReduce_Invariants(t *testing.T) {
	moduli := []int{LetterCount, DigitCount, PunctCount}

	for _, m := range moduli {
		for s := -200; s <= 200; s++ {
			r := Reduce(s, m)
			if r < 0 || r >= m {
				t.Fatalf("Reduce(%d, %d) = %d, out of range [0, %d)", s, m, r, m)
			}
			// Congruence: (r - s) must be an exact multiple of m.
			if (r-s)%m != 0 {
				t.Fatalf("Reduce(%d, %d) = %d, not congruent mod %d", s, m, r, m)
			}
		}
	}
}
