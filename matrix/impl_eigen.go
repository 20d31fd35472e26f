// SPDX-License-Identifier: MIT

// Package matrix - symmetric eigen kernel (cyclic Jacobi) and spectral ordering.
//
// Purpose:
//   - Provide the dense, always-terminating eigen tier for symmetric PSD operators.
//   - Give callers one canonical ascending ordering helper; no solver's own order is trusted.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	opEigenSym = "EigenSym"
	opSortEig  = "SortEigenAscending"
)

// DefaultJacobiSweeps caps the number of full cyclic sweeps. Jacobi converges
// quadratically once off-diagonal mass is small; 6-12 sweeps are typical.
const DefaultJacobiSweeps = 100

// EigenSym computes all eigenvalues and eigenvectors of a symmetric matrix via cyclic Jacobi sweeps.
// Implementation:
//   - Stage 1: ValidateSymmetric within tol; n==0 short-circuits to empty outputs.
//   - Stage 2: per sweep, visit every pair (p<q) in fixed order and annihilate A[p,q]
//     with a Jacobi rotation; accumulate rotations into Q.
//   - Stage 3: stop when max |A[p,q]| < tol; otherwise ErrMatrixEigenFailed after maxSweeps.
//
// Behavior highlights:
//   - Deterministic pivot order (row-major pairs) ⇒ bit-stable results.
//   - Eigenvalues are returned in diagonal order (NOT sorted); use SortEigenAscending.
//   - Columns of Q are orthonormal eigenvectors: A·Q[:,i] = vals[i]·Q[:,i].
//
// Inputs:
//   - m: symmetric Matrix (within tol).
//   - tol: convergence threshold on the largest off-diagonal magnitude.
//   - maxSweeps: cap on full sweeps (<=0 selects DefaultJacobiSweeps).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrMatrixEigenFailed.
//
// Complexity:
//   - Time O(sweeps * n^3), Space O(n^2).
//
// AI-Hints:
//   - Symmetrize first if the input comes from numerically noisy products.
func EigenSym(m Matrix, tol float64, maxSweeps int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	if maxSweeps <= 0 {
		maxSweeps = DefaultJacobiSweeps
	}
	n := m.Rows()
	a := asDense(m).Clone().(*Dense) // working copy; input untouched
	q := &Dense{r: n, c: n, data: make([]float64, n*n)}
	var i int
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}
	if n == 0 {
		return []float64{}, q, nil
	}

	var (
		sweep, p, r      int
		app, aqq, apq    float64
		aip, aiq         float64
		qip, qiq         float64
		theta, t, c, s   float64
		converged        bool
		ad, qd           = a.data, q.data
	)
	for sweep = 0; sweep < maxSweeps; sweep++ {
		if maxOffDiagonal(a) < tol {
			converged = true
			break
		}
		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				apq = ad[p*n+r]
				if apq == 0 {
					continue
				}
				app, aqq = ad[p*n+p], ad[r*n+r]
				// θ = (aqq−app)/(2*apq); t = sign(θ)/(|θ|+√(θ²+1)); c = 1/√(1+t²); s = t*c
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == r {
						continue
					}
					aip, aiq = ad[i*n+p], ad[i*n+r]
					ad[i*n+p] = c*aip - s*aiq
					ad[p*n+i] = ad[i*n+p]
					ad[i*n+r] = s*aip + c*aiq
					ad[r*n+i] = ad[i*n+r]
				}
				ad[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				ad[r*n+r] = s*s*app + 2*c*s*apq + c*c*aqq
				ad[p*n+r], ad[r*n+p] = 0, 0

				for i = 0; i < n; i++ {
					qip, qiq = qd[i*n+p], qd[i*n+r]
					qd[i*n+p] = c*qip - s*qiq
					qd[i*n+r] = s*qip + c*qiq
				}
			}
		}
	}
	if !converged && maxOffDiagonal(a) >= tol {
		return nil, nil, matrixErrorf(opEigenSym, fmt.Errorf("%d sweeps: %w", maxSweeps, ErrMatrixEigenFailed))
	}

	vals := make([]float64, n)
	for i = 0; i < n; i++ {
		vals[i] = ad[i*n+i]
	}

	return vals, q, nil
}

// maxOffDiagonal returns max_{i<j} |a[i,j]| on a square Dense.
func maxOffDiagonal(a *Dense) float64 {
	n := a.r
	var best, off float64
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			off = math.Abs(a.data[i*n+j])
			if off > best {
				best = off
			}
		}
	}

	return best
}

// SortEigenAscending reorders eigenpairs so that values are ascending.
// MAIN DESCRIPTION:
//   - Stable permutation sort of values; vectors (columns) are permuted alongside.
//
// Inputs:
//   - vals: eigenvalues (len k).
//   - vecs: n×k matrix whose column i pairs with vals[i].
//
// Returns:
//   - fresh slices/matrices; inputs are not mutated.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(vals) != vecs.Cols()).
//
// Complexity:
//   - Time O(k log k + n*k), Space O(n*k).
func SortEigenAscending(vals []float64, vecs *Dense) ([]float64, *Dense, error) {
	if vecs == nil {
		return nil, nil, matrixErrorf(opSortEig, ErrNilMatrix)
	}
	k := len(vals)
	if vecs.c != k {
		return nil, nil, matrixErrorf(opSortEig, ErrDimensionMismatch)
	}
	perm := make([]int, k)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(x, y int) bool { return vals[perm[x]] < vals[perm[y]] })

	outVals := make([]float64, k)
	outVecs := &Dense{r: vecs.r, c: k, data: make([]float64, vecs.r*k)}
	var row, col int
	for col = 0; col < k; col++ {
		outVals[col] = vals[perm[col]]
		for row = 0; row < vecs.r; row++ {
			outVecs.data[row*k+col] = vecs.data[row*k+perm[col]]
		}
	}

	return outVals, outVecs, nil
}
