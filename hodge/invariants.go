// SPDX-License-Identifier: MIT
// Package: hodgenet/hodge
//
// invariants.go — Betti numbers from near-zero eigenvalues.

package hodge

import "math"

// Invariant is β_k together with its truncation notice.
// When Truncated is set, fewer than n_k eigenvalues were computed and Count is
// only a lower bound on dim ker L_k.
type Invariant struct {
	Count     int
	Truncated bool
}

// CountHarmonic returns the number of |λ| < tol.
func CountHarmonic(values []float64, tol float64) int {
	count := 0
	for _, v := range values {
		if math.Abs(v) < tol {
			count++
		}
	}

	return count
}

// estimateInvariant derives β_k for a level of size n from its (possibly truncated) spectrum.
func estimateInvariant(e Eigenpairs, n int, tol float64) Invariant {
	return Invariant{
		Count:     CountHarmonic(e.values, tol),
		Truncated: e.Modes() < n,
	}
}
