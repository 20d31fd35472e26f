// SPDX-License-Identifier: MIT
// Package: hodgenet/builder
//
// impl_wheel.go — implementation of Wheel(n) constructor.
//
// Canonical definition:
//   • Wₙ = Cₙ₋₁ + hub, i.e. a cycle on vertices 0..n-2 plus hub vertex n-1.
//   • Therefore n ≥ 4 (the outer ring must be a valid cycle: n-1 ≥ 3).
//
// Contract:
//   • Builds the outer cycle using Cycle(n-1) with the same cfg semantics.
//   • Emits spokes from the hub to each ring vertex in index order.
//   • With triangles on and n ≥ 5, every rim edge spans a triangle with the hub
//     (n-1 triangles), so the filled wheel is a disc: β = [1, 0, 0].
//     W_4 is K_4, whose four triangles close into a sphere: β = [1, 0, 1].
//
// Complexity:
//   • Time: O(n). Space: O(n) edges.

package builder

import "fmt"

const (
	methodWheel   = "Wheel"
	minWheelNodes = 4
)

// Wheel returns a Constructor that builds a wheel Wₙ with hub n-1.
func Wheel(n int) Constructor {
	return func(es *edgeSet, cfg builderConfig) error {
		if n < minWheelNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodWheel, n, minWheelNodes, ErrTooFewVertices)
		}
		if err := Cycle(n-1)(es, cfg); err != nil {
			return fmt.Errorf("%s: base cycle C_%d: %w", methodWheel, n-1, err)
		}
		hub := n - 1
		es.ensure(n)
		for i := 0; i < hub; i++ {
			es.add(hub, i)
		}

		return nil
	}
}
