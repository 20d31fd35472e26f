// SPDX-License-Identifier: MIT
// Package: hodgenet/builder
//
// impl_cycle.go — implementation of Cycle(n) constructor.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewVertices).
//   • Vertices 0..n-1; edges emitted in stable order i — (i+1)%n for i=0..n-1.
//   • A cycle has no triangles for n > 3; C_3 is filled when triangles are on.
//
// Complexity:
//   • Time: O(n). Space: O(n) edges.

package builder

import "fmt"

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds an n-vertex simple cycle C_n.
func Cycle(n int) Constructor {
	return func(es *edgeSet, _ builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		es.ensure(n)
		for i := 0; i < n; i++ {
			es.add(i, (i+1)%n)
		}

		return nil
	}
}
