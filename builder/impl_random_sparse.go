// SPDX-License-Identifier: MIT
// Package: hodgenet/builder
//
// impl_random_sparse.go — implementation of RandomSparse(n, p) constructor.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewVertices); p ∈ [0,1] (else ErrInvalidProbability).
//   • RNG is required only when 0 < p < 1 (else ErrNeedRandSource);
//     p ∈ {0,1} is deterministic (empty / complete).
//   • Edge trials in stable order: i asc, j asc with j > i.
//
// Complexity:
//   • Time: O(n²) Bernoulli trials. Space: O(E).
//
// Determinism:
//   • Fixed trial order ⇒ identical outcomes for a fixed seed.

package builder

import "fmt"

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
	probMin                 = 0.0
	probMax                 = 1.0
)

// RandomSparse returns a Constructor that samples an Erdős–Rényi graph G(n,p).
func RandomSparse(n int, p float64) Constructor {
	return func(es *edgeSet, cfg builderConfig) error {
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}
		es.ensure(n)

		var i, j int
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				switch {
				case p == probMax:
					es.add(i, j)
				case p == probMin:
				case cfg.rng.Float64() < p:
					es.add(i, j)
				}
			}
		}

		return nil
	}
}
