// SPDX-License-Identifier: MIT

// Package matrix - thin Householder QR.
//
// Purpose:
//   - Re-orthonormalize a tall block of trial vectors (rows ≥ cols) between
//     power steps of the iterative eigen tier.
//
// Behavior highlights:
//   - Rank-deficient input still yields orthonormal Q: a zero column is skipped
//     (identity reflection) and Q's column keeps the unit basis vector.

package matrix

import (
	"fmt"
	"math"
)

const opThinQR = "ThinQR"

// NormZero is the zero value for norm accumulators.
const NormZero = 0.0

// ThinQR returns the economy decomposition m = Q·R with Q rows×cols having
// orthonormal columns and R cols×cols upper triangular.
// Implementation:
//   - Stage 1: Householder reflections annihilate m[k+1:,k] column by column; reflectors are kept.
//   - Stage 2: Q is formed by applying the reflectors in reverse to the first cols columns of I.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (cols > rows).
//
// Complexity:
//   - Time O(rows*cols^2), Space O(rows*cols).
func ThinQR(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opThinQR, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if cols > rows {
		return nil, nil, matrixErrorf(opThinQR, fmt.Errorf("%dx%d: %w", rows, cols, ErrDimensionMismatch))
	}
	a := asDense(m).Clone().(*Dense)
	ad := a.data

	reflectors := make([][]float64, cols)
	taus := make([]float64, cols)
	var (
		i, j, k           int
		norm, alpha, beta float64
		sum, val          float64
	)
	for k = 0; k < cols; k++ {
		norm = NormZero
		for i = k; i < rows; i++ {
			val = ad[i*cols+k]
			norm += val * val
		}
		norm = math.Sqrt(norm)
		if norm == NormZero {
			continue
		}
		alpha = -math.Copysign(norm, ad[k*cols+k])
		v := make([]float64, rows)
		for i = k; i < rows; i++ {
			v[i] = ad[i*cols+k]
		}
		v[k] -= alpha
		beta = NormZero
		for i = k; i < rows; i++ {
			beta += v[i] * v[i]
		}
		if beta == NormZero {
			continue
		}
		tau := 2.0 / beta
		for j = k; j < cols; j++ {
			sum = NormZero
			for i = k; i < rows; i++ {
				sum += v[i] * ad[i*cols+j]
			}
			for i = k; i < rows; i++ {
				ad[i*cols+j] -= tau * v[i] * sum
			}
		}
		reflectors[k], taus[k] = v, tau
	}

	q := &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}
	qd := q.data
	for i = 0; i < cols; i++ {
		qd[i*cols+i] = 1.0
	}
	for k = cols - 1; k >= 0; k-- {
		v := reflectors[k]
		if v == nil {
			continue
		}
		for j = 0; j < cols; j++ {
			sum = NormZero
			for i = k; i < rows; i++ {
				sum += v[i] * qd[i*cols+j]
			}
			for i = k; i < rows; i++ {
				qd[i*cols+j] -= taus[k] * v[i] * sum
			}
		}
	}

	r := &Dense{r: cols, c: cols, data: make([]float64, cols*cols)}
	for i = 0; i < cols; i++ {
		for j = i; j < cols; j++ {
			r.data[i*cols+j] = ad[i*cols+j]
		}
	}

	return q, r, nil
}
