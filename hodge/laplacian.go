// SPDX-License-Identifier: MIT
// Package: hodgenet/hodge
//
// laplacian.go — Hodge Laplacian assembly L_k = B_kᵀB_k + B_{k+1}B_{k+1}ᵀ.

package hodge

import (
	"fmt"

	"github.com/katalvlaran/hodgenet/matrix"
)

const opLaplacian = "HodgeLaplacian"

// HodgeLaplacian combines the boundary operators adjacent to a level of size n.
// down is B_k (nil for k = 0, where the term is dropped); up is B_{k+1}
// (n×0 at the top level, contributing nothing). The result is symmetrized
// as (L+Lᵀ)/2 so that L == Lᵀ holds exactly.
//
// Errors: ErrDimensionMismatch (wrapped) when down.Cols() or up.Rows() differ from n.
// Complexity: O(flops of the two sparse products).
func HodgeLaplacian(n int, down, up *matrix.Sparse) (*matrix.Sparse, error) {
	l, err := matrix.ZeroSparse(n, n)
	if err != nil {
		return nil, hodgeErrorf(opLaplacian, err)
	}
	if down != nil {
		if down.Cols() != n {
			return nil, hodgeErrorf(opLaplacian, fmt.Errorf("down %dx%d vs n=%d: %w",
				down.Rows(), down.Cols(), n, matrix.ErrDimensionMismatch))
		}
		gram, err := matrix.MulSparse(down.Transpose(), down)
		if err != nil {
			return nil, hodgeErrorf(opLaplacian, err)
		}
		if l, err = matrix.AddSparse(l, gram, 1, 1); err != nil {
			return nil, hodgeErrorf(opLaplacian, err)
		}
	}
	if up != nil {
		if up.Rows() != n {
			return nil, hodgeErrorf(opLaplacian, fmt.Errorf("up %dx%d vs n=%d: %w",
				up.Rows(), up.Cols(), n, matrix.ErrDimensionMismatch))
		}
		gram, err := matrix.MulSparse(up, up.Transpose())
		if err != nil {
			return nil, hodgeErrorf(opLaplacian, err)
		}
		if l, err = matrix.AddSparse(l, gram, 1, 1); err != nil {
			return nil, hodgeErrorf(opLaplacian, err)
		}
	}

	return matrix.SymmetrizeSparse(l)
}
