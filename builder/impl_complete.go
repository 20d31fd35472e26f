// SPDX-License-Identifier: MIT
// Package: hodgenet/builder
//
// impl_complete.go — implementation of Complete(n) and CompleteBipartite(n1,n2).
//
// Contract:
//   • Complete: n ≥ 1; emits each pair {i,j}, i<j, in lexicographic order.
//   • CompleteBipartite: n1, n2 ≥ 1; left side is 0..n1-1, right side is
//     n1..n1+n2-1; emits every cross pair, i asc over left, j asc over right.
//     Bipartite graphs have no triangles regardless of WithTriangles.
//
// Complexity:
//   • Complete: O(n²). CompleteBipartite: O(n1·n2).

package builder

import "fmt"

const (
	methodComplete          = "Complete"
	methodCompleteBipartite = "CompleteBipartite"
	minCompleteNodes        = 1
	minPartition            = 1
)

// Complete returns a Constructor that builds the complete graph K_n.
// With triangles on, K_n yields C(n,3) 2-simplices.
func Complete(n int) Constructor {
	return func(es *edgeSet, _ builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		es.ensure(n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				es.add(i, j)
			}
		}

		return nil
	}
}

// CompleteBipartite returns a Constructor that builds K_{n1,n2}.
func CompleteBipartite(n1, n2 int) Constructor {
	return func(es *edgeSet, _ builderConfig) error {
		if n1 < minPartition || n2 < minPartition {
			return fmt.Errorf("%s: partitions %d,%d < min=%d: %w",
				methodCompleteBipartite, n1, n2, minPartition, ErrTooFewVertices)
		}
		es.ensure(n1 + n2)
		for i := 0; i < n1; i++ {
			for j := 0; j < n2; j++ {
				es.add(i, n1+j)
			}
		}

		return nil
	}
}
