// SPDX-License-Identifier: MIT
// Package: hodgenet/builder
//
// impl_path.go - implementation of Path(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Vertices 0..n-1; edges (i-1) — i for i=1..n-1 in increasing order.
//
// Complexity:
//   - Time: O(n). Space: O(n) edges.

package builder

import "fmt"

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds a simple path P_n.
func Path(n int) Constructor {
	return func(es *edgeSet, _ builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		es.ensure(n)
		for i := 1; i < n; i++ {
			es.add(i-1, i)
		}

		return nil
	}
}
