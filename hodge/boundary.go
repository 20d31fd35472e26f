// SPDX-License-Identifier: MIT
// Package: hodgenet/hodge
//
// boundary.go — signed boundary operators B_k : C_k → C_{k-1}.
//
// Contract:
//   • B_k[i,j] = (-1)^p when simplex i of level k-1 is simplex j of level k with
//     the vertex at sorted position p deleted; 0 otherwise.
//   • Built directly as CSR from the face enumeration; no dense intermediate.
//   • Degenerate shapes are legal: an empty neighbour level yields an
//     n_{k-1}×n_k operator with no entries. B_{K+1} for the top level K is n_K×0.
//
// Complexity:
//   • Time O(n_k·(k+1)·k) for face keys, Space O((k+1)·n_k).

package hodge

import (
	"fmt"

	"github.com/katalvlaran/hodgenet/matrix"
	"github.com/katalvlaran/hodgenet/simplicial"
)

const opBoundary = "BoundaryOperator"

// BoundaryOperator assembles B_k for k in [1, MaxDim+1].
// Errors:
//   - ErrLevelOutOfRange for k outside [1, MaxDim+1].
//   - *simplicial.StructuralError wrapping ErrMissingFace if a face lookup fails
//     (impossible for complexes produced by package simplicial).
func BoundaryOperator(sc *simplicial.Complex, k int) (*matrix.Sparse, error) {
	if sc == nil {
		return nil, hodgeErrorf(opBoundary, ErrNilComplex)
	}
	top := sc.MaxDim()
	if k < 1 || k > top+1 {
		return nil, levelErrorf(opBoundary, k, 1, top+1)
	}
	rows, cols := sc.Count(k-1), sc.Count(k)
	if k == top+1 || rows == 0 || cols == 0 {
		return matrix.ZeroSparse(rows, cols)
	}

	below := sc.Level(k - 1)
	entries := make([]matrix.Triplet, 0, cols*(k+1))
	var faultErr error
	sc.Level(k).Do(func(j int, s simplicial.Simplex) bool {
		for p, face := range s.Faces() {
			i, ok := below.Index(face)
			if !ok {
				faultErr = &simplicial.StructuralError{
					Level: k, Simplex: append(simplicial.Simplex(nil), s...), Face: face,
					Err: simplicial.ErrMissingFace,
				}
				return false
			}
			entries = append(entries, matrix.Triplet{Row: i, Col: j, Val: boundarySign(p)})
		}
		return true
	})
	if faultErr != nil {
		return nil, hodgeErrorf(opBoundary, faultErr)
	}
	b, err := matrix.NewSparse(rows, cols, entries)
	if err != nil {
		return nil, hodgeErrorf(opBoundary, fmt.Errorf("level %d: %w", k, err))
	}

	return b, nil
}

// boundarySign returns (-1)^p.
func boundarySign(p int) float64 {
	if p%2 == 0 {
		return 1
	}

	return -1
}
