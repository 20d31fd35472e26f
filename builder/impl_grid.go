// SPDX-License-Identifier: MIT
// Package: hodgenet/builder
//
// impl_grid.go — implementation of Grid(rows, cols) constructor.
//
// Canonical model:
//   • 2D orthogonal grid with 4-neighbourhood (right & bottom neighbours per cell).
//   • Vertex (r,c) has index r*cols + c (row-major).
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   • For each cell in row-major order emit Right then Bottom when present.
//   • The 4-neighbour grid has no triangles; its interior squares are
//     independent 1-cycles: β_1 = (rows-1)(cols-1).
//
// Complexity:
//   • Time: O(rows*cols). Space: O(rows*cols) edges.

package builder

import "fmt"

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols lattice.
func Grid(rows, cols int) Constructor {
	return func(es *edgeSet, _ builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: %dx%d < min=%d: %w", methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}
		es.ensure(rows * cols)
		var r, c, u int
		for r = 0; r < rows; r++ {
			for c = 0; c < cols; c++ {
				u = r*cols + c
				if c+1 < cols {
					es.add(u, u+1)
				}
				if r+1 < rows {
					es.add(u, u+cols)
				}
			}
		}

		return nil
	}
}
