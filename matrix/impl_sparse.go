// SPDX-License-Identifier: MIT

// Package matrix - compressed sparse row (CSR) operators.
//
// Purpose:
//   - Store signed incidence (boundary) operators and the Laplacians built from them
//     without a dense intermediate: nnz(B_k) = (k+1)·n_k.
//   - Provide the handful of products the Hodge assembler and the iterative eigen
//     tier need: A·x, Aᵀ·x, A·B, A+B, Aᵀ, (A+Aᵀ)/2.
//
// Invariants:
//   - rowPtr has length r+1, rowPtr[0]==0, rowPtr[r]==nnz.
//   - Column indices inside each row are strictly increasing.
//   - No explicit zeros are stored (cancellations are dropped on construction).
//
// AI-Hints:
//   - Densify (ToDense) only where the dense eigen tier needs it.
//   - Sparse is immutable after construction and therefore safe for concurrent readers.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	opNewSparse   = "NewSparse"
	opSparseMul   = "MulSparse"
	opSparseAdd   = "AddSparse"
	opSparseVec   = "Sparse.MulVec"
	opSparseTVec  = "Sparse.MulTransVec"
	opSparseAt    = "Sparse.At"
	opSparseDense = "Sparse.MulDense"
)

// Sparse is an immutable CSR matrix.
type Sparse struct {
	r, c   int
	rowPtr []int
	colIdx []int
	vals   []float64
}

// NewSparse compresses triplets into a CSR matrix of shape rows×cols.
// MAIN DESCRIPTION:
//   - Duplicate coordinates are summed; entries that sum to exactly 0 are dropped.
//
// Implementation:
//   - Stage 1: validate shape and every triplet (bounds, finiteness).
//   - Stage 2: bucket by row (counting sort), then sort+merge columns inside each row.
//
// Errors:
//   - ErrInvalidDimensions, ErrBadTriplet, ErrNaNInf.
//
// Complexity:
//   - Time O(nnz log(nnz/r) + r), Space O(nnz + r).
func NewSparse(rows, cols int, entries []Triplet) (*Sparse, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(opNewSparse, ErrInvalidDimensions)
	}
	for idx, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, matrixErrorf(opNewSparse, fmt.Errorf("triplet %d (%d,%d): %w", idx, e.Row, e.Col, ErrBadTriplet))
		}
		if math.IsNaN(e.Val) || math.IsInf(e.Val, 0) {
			return nil, matrixErrorf(opNewSparse, fmt.Errorf("triplet %d (%d,%d): %w", idx, e.Row, e.Col, ErrNaNInf))
		}
	}

	// Stage 2a: counting sort by row.
	counts := make([]int, rows+1)
	for _, e := range entries {
		counts[e.Row+1]++
	}
	for i := 0; i < rows; i++ {
		counts[i+1] += counts[i]
	}
	bucket := make([]Triplet, len(entries))
	next := make([]int, rows)
	copy(next, counts[:rows])
	for _, e := range entries {
		bucket[next[e.Row]] = e
		next[e.Row]++
	}

	// Stage 2b: per-row sort + merge duplicates + drop zeros.
	s := &Sparse{r: rows, c: cols, rowPtr: make([]int, rows+1)}
	for i := 0; i < rows; i++ {
		row := bucket[counts[i]:counts[i+1]]
		sort.Slice(row, func(x, y int) bool { return row[x].Col < row[y].Col })
		for k := 0; k < len(row); {
			col, sum := row[k].Col, 0.0
			for k < len(row) && row[k].Col == col {
				sum += row[k].Val
				k++
			}
			if sum != 0 {
				s.colIdx = append(s.colIdx, col)
				s.vals = append(s.vals, sum)
			}
		}
		s.rowPtr[i+1] = len(s.colIdx)
	}

	return s, nil
}

// ZeroSparse returns an all-zero rows×cols operator (nnz == 0).
// Errors: ErrInvalidDimensions.
func ZeroSparse(rows, cols int) (*Sparse, error) {
	return NewSparse(rows, cols, nil)
}

// SparseFromDense keeps entries with |v| > dropTol. Complexity: O(r*c).
func SparseFromDense(m Matrix, dropTol float64) (*Sparse, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opNewSparse, err)
	}
	d := asDense(m)
	entries := make([]Triplet, 0)
	d.Do(func(i, j int, v float64) bool {
		if math.Abs(v) > dropTol {
			entries = append(entries, Triplet{Row: i, Col: j, Val: v})
		}
		return true
	})

	return NewSparse(d.r, d.c, entries)
}

// Rows returns the row count.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the column count.
func (s *Sparse) Cols() int { return s.c }

// NNZ returns the number of stored (non-zero) entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// At returns s[i,j] via binary search within row i.
// Errors: ErrOutOfRange. Complexity: O(log nnz(row)).
func (s *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, matrixErrorf(opSparseAt, fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
	}
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	k := lo + sort.SearchInts(s.colIdx[lo:hi], j)
	if k < hi && s.colIdx[k] == j {
		return s.vals[k], nil
	}

	return 0, nil
}

// Do visits stored entries in row-major order; stops when f returns false.
func (s *Sparse) Do(f func(i, j int, v float64) bool) {
	var i, k int
	for i = 0; i < s.r; i++ {
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			if !f(i, s.colIdx[k], s.vals[k]) {
				return
			}
		}
	}
}

// RowEntries calls f for every stored entry of row i (no bounds error; empty for invalid i).
func (s *Sparse) RowEntries(i int, f func(j int, v float64)) {
	if i < 0 || i >= s.r {
		return
	}
	for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
		f(s.colIdx[k], s.vals[k])
	}
}

// Transpose returns sᵀ in CSR form. Complexity: O(nnz + r + c).
func (s *Sparse) Transpose() *Sparse {
	t := &Sparse{
		r:      s.c,
		c:      s.r,
		rowPtr: make([]int, s.c+1),
		colIdx: make([]int, len(s.colIdx)),
		vals:   make([]float64, len(s.vals)),
	}
	for _, j := range s.colIdx {
		t.rowPtr[j+1]++
	}
	for j := 0; j < s.c; j++ {
		t.rowPtr[j+1] += t.rowPtr[j]
	}
	next := make([]int, s.c)
	copy(next, t.rowPtr[:s.c])
	// Walking rows of s in increasing order keeps columns of t sorted.
	var i, k, dst int
	for i = 0; i < s.r; i++ {
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			dst = next[s.colIdx[k]]
			t.colIdx[dst] = i
			t.vals[dst] = s.vals[k]
			next[s.colIdx[k]]++
		}
	}

	return t
}

// MulVec returns y = s·x. Errors: ErrDimensionMismatch. Complexity: O(nnz + r).
func (s *Sparse) MulVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, s.c); err != nil {
		return nil, matrixErrorf(opSparseVec, err)
	}
	y := make([]float64, s.r)
	var i, k int
	var acc float64
	for i = 0; i < s.r; i++ {
		acc = ZeroSum
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			acc += s.vals[k] * x[s.colIdx[k]]
		}
		y[i] = acc
	}

	return y, nil
}

// MulTransVec returns y = sᵀ·x without materializing sᵀ.
// Errors: ErrDimensionMismatch. Complexity: O(nnz + c).
func (s *Sparse) MulTransVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, s.r); err != nil {
		return nil, matrixErrorf(opSparseTVec, err)
	}
	y := make([]float64, s.c)
	var i, k int
	for i = 0; i < s.r; i++ {
		if x[i] == 0 {
			continue
		}
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			y[s.colIdx[k]] += s.vals[k] * x[i]
		}
	}

	return y, nil
}

// MulSparse returns a·b (Gustavson row-by-row accumulation).
// MAIN DESCRIPTION:
//   - Exact cancellations are dropped, so a·b for a composed boundary pair has nnz 0.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
//
// Complexity:
//   - Time O(flops + r_a * log), Space O(c_b) accumulator + output.
func MulSparse(a, b *Sparse) (*Sparse, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opSparseMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opSparseMul, ErrDimensionMismatch)
	}
	out := &Sparse{r: a.r, c: b.c, rowPtr: make([]int, a.r+1)}
	acc := make([]float64, b.c)
	seen := make([]bool, b.c)
	touched := make([]int, 0, 16)
	var i, ka, kb, mid int
	var av float64
	for i = 0; i < a.r; i++ {
		touched = touched[:0]
		for ka = a.rowPtr[i]; ka < a.rowPtr[i+1]; ka++ {
			mid, av = a.colIdx[ka], a.vals[ka]
			for kb = b.rowPtr[mid]; kb < b.rowPtr[mid+1]; kb++ {
				j := b.colIdx[kb]
				if !seen[j] {
					seen[j] = true
					touched = append(touched, j)
				}
				acc[j] += av * b.vals[kb]
			}
		}
		sort.Ints(touched)
		for _, j := range touched {
			if acc[j] != 0 {
				out.colIdx = append(out.colIdx, j)
				out.vals = append(out.vals, acc[j])
			}
			acc[j], seen[j] = 0, false
		}
		out.rowPtr[i+1] = len(out.colIdx)
	}

	return out, nil
}

// AddSparse returns alpha*a + beta*b for identically shaped operands.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(nnz(a)+nnz(b)).
func AddSparse(a, b *Sparse, alpha, beta float64) (*Sparse, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opSparseAdd, ErrNilMatrix)
	}
	if a.r != b.r || a.c != b.c {
		return nil, matrixErrorf(opSparseAdd, ErrDimensionMismatch)
	}
	out := &Sparse{r: a.r, c: a.c, rowPtr: make([]int, a.r+1)}
	var i, ka, kb int
	var col int
	var v float64
	for i = 0; i < a.r; i++ {
		ka, kb = a.rowPtr[i], b.rowPtr[i]
		for ka < a.rowPtr[i+1] || kb < b.rowPtr[i+1] {
			switch {
			case kb >= b.rowPtr[i+1] || (ka < a.rowPtr[i+1] && a.colIdx[ka] < b.colIdx[kb]):
				col, v = a.colIdx[ka], alpha*a.vals[ka]
				ka++
			case ka >= a.rowPtr[i+1] || b.colIdx[kb] < a.colIdx[ka]:
				col, v = b.colIdx[kb], beta*b.vals[kb]
				kb++
			default:
				col, v = a.colIdx[ka], alpha*a.vals[ka]+beta*b.vals[kb]
				ka++
				kb++
			}
			if v != 0 {
				out.colIdx = append(out.colIdx, col)
				out.vals = append(out.vals, v)
			}
		}
		out.rowPtr[i+1] = len(out.colIdx)
	}

	return out, nil
}

// SymmetrizeSparse returns (s + sᵀ)/2; exact symmetry is guaranteed by construction.
// Errors: ErrNonSquare.
func SymmetrizeSparse(s *Sparse) (*Sparse, error) {
	if s == nil {
		return nil, matrixErrorf(opSymmetric, ErrNilMatrix)
	}
	if s.r != s.c {
		return nil, matrixErrorf(opSymmetric, ErrNonSquare)
	}

	return AddSparse(s, s.Transpose(), 0.5, 0.5)
}

// ToDense materializes the operator. Complexity: O(r*c + nnz).
func (s *Sparse) ToDense() *Dense {
	d := &Dense{r: s.r, c: s.c, data: make([]float64, s.r*s.c)}
	s.Do(func(i, j int, v float64) bool {
		d.data[i*s.c+j] = v
		return true
	})

	return d
}

// MaxAbs returns max |s[i,j]| over stored entries (0 when nnz == 0).
func (s *Sparse) MaxAbs() float64 {
	var best float64
	for _, v := range s.vals {
		if a := math.Abs(v); a > best {
			best = a
		}
	}

	return best
}

// GershgorinBound returns max_i Σ_j |s[i,j]|, an upper bound on |λ| for any eigenvalue.
func (s *Sparse) GershgorinBound() float64 {
	var best, row float64
	var i, k int
	for i = 0; i < s.r; i++ {
		row = 0
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			row += math.Abs(s.vals[k])
		}
		if row > best {
			best = row
		}
	}

	return best
}

// IsSymmetric reports whether s[i,j] == s[j,i] exactly for every stored entry.
func (s *Sparse) IsSymmetric() bool {
	if s.r != s.c {
		return false
	}
	t := s.Transpose()
	if len(t.vals) != len(s.vals) {
		return false
	}
	for i := range s.rowPtr {
		if s.rowPtr[i] != t.rowPtr[i] {
			return false
		}
	}
	for k := range s.vals {
		if s.colIdx[k] != t.colIdx[k] || s.vals[k] != t.vals[k] {
			return false
		}
	}

	return true
}

// MulDense returns s·d as a Dense (block form of MulVec).
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(nnz·d.Cols()).
func (s *Sparse) MulDense(d *Dense) (*Dense, error) {
	if d == nil {
		return nil, matrixErrorf(opSparseDense, ErrNilMatrix)
	}
	if s.c != d.r {
		return nil, matrixErrorf(opSparseDense, ErrDimensionMismatch)
	}
	w := d.c
	out := &Dense{r: s.r, c: w, data: make([]float64, s.r*w)}
	var i, k, j, src, dst int
	var v float64
	for i = 0; i < s.r; i++ {
		dst = i * w
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			v, src = s.vals[k], s.colIdx[k]*w
			for j = 0; j < w; j++ {
				out.data[dst+j] += v * d.data[src+j]
			}
		}
	}

	return out, nil
}
