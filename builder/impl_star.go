// SPDX-License-Identifier: MIT
// Package: hodgenet/builder
//
// impl_star.go - implementation of Star(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Hub is vertex 0 (documented design choice); leaves are 1..n-1.
//   - Spokes emitted in stable order 0 — i for increasing i.
//
// Complexity:
//   - Time: O(n). Space: O(n) edges.

package builder

import "fmt"

const (
	methodStar   = "Star"
	minStarNodes = 2
	starHub      = 0
)

// Star returns a Constructor that builds a star K_{1,n-1} with hub 0.
func Star(n int) Constructor {
	return func(es *edgeSet, _ builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		es.ensure(n)
		for i := 1; i < n; i++ {
			es.add(starHub, i)
		}

		return nil
	}
}
