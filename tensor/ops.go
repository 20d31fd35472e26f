// SPDX-License-Identifier: MIT

// Package tensor - value-returning kernels.
//
// Purpose:
//   - Express every operator of the network as a composition of a few
//     row- or channel-wise linear maps plus elementwise glue.
//
// Contract:
//   - Inputs are never mutated; each call allocates its result.
//   - Shape checks run before any arithmetic and fail with ErrShapeMismatch.
//   - Loop orders are fixed, so results are bitwise deterministic.

package tensor

import (
	"fmt"

	"github.com/katalvlaran/hodgenet/matrix"
)

const (
	opMulChannels  = "MulChannels"
	opMulRows      = "MulRows"
	opMulRowsTrans = "MulRowsTrans"
	opMixRows      = "MixRows"
	opAdd          = "Add"
	opAddBias      = "AddBias"
	opConcat       = "ConcatChannels"
)

// MulChannels returns Y[b,r,:] = X[b,r,:]·W for a C_in×C_out weight W.
// Errors: ErrNilTensor, ErrShapeMismatch (W.Rows() != C_in).
// Complexity: O(B·R·C_in·C_out).
func MulChannels(x *Tensor, w *matrix.Dense) (*Tensor, error) {
	if x == nil || w == nil {
		return nil, tensorErrorf(opMulChannels, ErrNilTensor)
	}
	cin, cout := w.Rows(), w.Cols()
	if x.shape.Channels != cin {
		return nil, tensorErrorf(opMulChannels, fmt.Errorf("%v · %d×%d: %w", x.shape, cin, cout, ErrShapeMismatch))
	}
	out := Zeros(Shape{x.shape.Batch, x.shape.Rows, cout})
	wv := w.Values()
	nrows := x.shape.Batch * x.shape.Rows
	var row, i, o int
	var xv float64
	for row = 0; row < nrows; row++ {
		xrow := x.data[row*cin : (row+1)*cin]
		orow := out.data[row*cout : (row+1)*cout]
		for i = 0; i < cin; i++ {
			xv = xrow[i]
			if xv == 0 {
				continue
			}
			for o = 0; o < cout; o++ {
				orow[o] += xv * wv[i*cout+o]
			}
		}
	}

	return out, nil
}

// MulRows returns Y_b = U·X_b for every batch element, with U of shape R_out×R.
// Errors: ErrNilTensor, ErrShapeMismatch (U.Cols() != R).
func MulRows(u *matrix.Dense, x *Tensor) (*Tensor, error) {
	if x == nil || u == nil {
		return nil, tensorErrorf(opMulRows, ErrNilTensor)
	}
	if u.Cols() != x.shape.Rows {
		return nil, tensorErrorf(opMulRows, fmt.Errorf("%d×%d · %v: %w", u.Rows(), u.Cols(), x.shape, ErrShapeMismatch))
	}
	rin, rout, ch := u.Cols(), u.Rows(), x.shape.Channels
	out := Zeros(Shape{x.shape.Batch, rout, ch})
	uv := u.Values()
	var b, r, j, c int
	var coef float64
	for b = 0; b < x.shape.Batch; b++ {
		for r = 0; r < rout; r++ {
			orow := out.data[(b*rout+r)*ch : (b*rout+r+1)*ch]
			for j = 0; j < rin; j++ {
				coef = uv[r*rin+j]
				if coef == 0 {
					continue
				}
				xrow := x.data[(b*rin+j)*ch : (b*rin+j+1)*ch]
				for c = 0; c < ch; c++ {
					orow[c] += coef * xrow[c]
				}
			}
		}
	}

	return out, nil
}

// MulRowsTrans returns Y_b = Uᵀ·X_b for every batch element, with U of shape R×R_out.
// Errors: ErrNilTensor, ErrShapeMismatch (U.Rows() != R).
func MulRowsTrans(u *matrix.Dense, x *Tensor) (*Tensor, error) {
	if x == nil || u == nil {
		return nil, tensorErrorf(opMulRowsTrans, ErrNilTensor)
	}
	if u.Rows() != x.shape.Rows {
		return nil, tensorErrorf(opMulRowsTrans, fmt.Errorf("(%d×%d)ᵀ · %v: %w", u.Rows(), u.Cols(), x.shape, ErrShapeMismatch))
	}
	rin, rout, ch := u.Rows(), u.Cols(), x.shape.Channels
	out := Zeros(Shape{x.shape.Batch, rout, ch})
	uv := u.Values()
	var b, r, m, c int
	var coef float64
	for b = 0; b < x.shape.Batch; b++ {
		for r = 0; r < rin; r++ {
			xrow := x.data[(b*rin+r)*ch : (b*rin+r+1)*ch]
			for m = 0; m < rout; m++ {
				coef = uv[r*rout+m]
				if coef == 0 {
					continue
				}
				orow := out.data[(b*rout+m)*ch : (b*rout+m+1)*ch]
				for c = 0; c < ch; c++ {
					orow[c] += coef * xrow[c]
				}
			}
		}
	}

	return out, nil
}

// MixRows returns Y_b = S·X_b for a sparse S of shape R_out×R.
// Errors: ErrNilTensor, ErrShapeMismatch (S.Cols() != R).
// Complexity: O(B·nnz(S)·C).
func MixRows(s *matrix.Sparse, x *Tensor) (*Tensor, error) {
	if x == nil || s == nil {
		return nil, tensorErrorf(opMixRows, ErrNilTensor)
	}
	if s.Cols() != x.shape.Rows {
		return nil, tensorErrorf(opMixRows, fmt.Errorf("%d×%d · %v: %w", s.Rows(), s.Cols(), x.shape, ErrShapeMismatch))
	}
	rin, rout, ch := s.Cols(), s.Rows(), x.shape.Channels
	out := Zeros(Shape{x.shape.Batch, rout, ch})
	for b := 0; b < x.shape.Batch; b++ {
		for r := 0; r < rout; r++ {
			orow := out.data[(b*rout+r)*ch : (b*rout+r+1)*ch]
			s.RowEntries(r, func(j int, v float64) {
				xrow := x.data[(b*rin+j)*ch : (b*rin+j+1)*ch]
				for c := range orow {
					orow[c] += v * xrow[c]
				}
			})
		}
	}

	return out, nil
}

// Add returns a + b. Errors: ErrNilTensor, ErrShapeMismatch.
func Add(a, b *Tensor) (*Tensor, error) {
	if a == nil || b == nil {
		return nil, tensorErrorf(opAdd, ErrNilTensor)
	}
	if a.shape != b.shape {
		return nil, mismatchf(opAdd, a.shape, b.shape)
	}
	out := Zeros(a.shape)
	for i := range out.data {
		out.data[i] = a.data[i] + b.data[i]
	}

	return out, nil
}

// Sum adds any number of same-shaped tensors; nil operands are skipped.
// Errors: ErrNilTensor when every operand is nil, ErrShapeMismatch.
func Sum(ts ...*Tensor) (*Tensor, error) {
	var acc *Tensor
	for _, t := range ts {
		if t == nil {
			continue
		}
		if acc == nil {
			acc = t.Clone()
			continue
		}
		if acc.shape != t.shape {
			return nil, mismatchf("Sum", acc.shape, t.shape)
		}
		for i, v := range t.data {
			acc.data[i] += v
		}
	}
	if acc == nil {
		return nil, tensorErrorf("Sum", ErrNilTensor)
	}

	return acc, nil
}

// Scale returns alpha·x.
func Scale(x *Tensor, alpha float64) *Tensor {
	out := Zeros(x.shape)
	for i, v := range x.data {
		out.data[i] = alpha * v
	}

	return out
}

// AddBias returns x with bias[c] added to every row. Errors: ErrShapeMismatch (len(bias) != C).
func AddBias(x *Tensor, bias []float64) (*Tensor, error) {
	if len(bias) != x.shape.Channels {
		return nil, tensorErrorf(opAddBias, fmt.Errorf("%v + bias[%d]: %w", x.shape, len(bias), ErrShapeMismatch))
	}
	out := x.Clone()
	ch := x.shape.Channels
	for i := range out.data {
		out.data[i] += bias[i%ch]
	}

	return out, nil
}

// Apply returns f applied elementwise.
func Apply(x *Tensor, f func(float64) float64) *Tensor {
	out := Zeros(x.shape)
	for i, v := range x.data {
		out.data[i] = f(v)
	}

	return out
}

// ApplyRows returns a tensor of the same shape whose every row is f(in, out),
// with out pre-zeroed and in read-only.
func ApplyRows(x *Tensor, f func(in, out []float64)) *Tensor {
	out := Zeros(x.shape)
	ch := x.shape.Channels
	if ch == 0 {
		return out
	}
	for row := 0; row < x.shape.Batch*x.shape.Rows; row++ {
		f(x.data[row*ch:(row+1)*ch], out.data[row*ch:(row+1)*ch])
	}

	return out
}

// ConcatChannels joins tensors along the channel axis.
// Errors: ErrNilTensor (no operand or a nil operand), ErrShapeMismatch (batch or rows differ).
func ConcatChannels(ts ...*Tensor) (*Tensor, error) {
	if len(ts) == 0 || ts[0] == nil {
		return nil, tensorErrorf(opConcat, ErrNilTensor)
	}
	base := ts[0].shape
	total := 0
	for _, t := range ts {
		if t == nil {
			return nil, tensorErrorf(opConcat, ErrNilTensor)
		}
		if t.shape.Batch != base.Batch || t.shape.Rows != base.Rows {
			return nil, mismatchf(opConcat, base, t.shape)
		}
		total += t.shape.Channels
	}
	out := Zeros(Shape{base.Batch, base.Rows, total})
	for row := 0; row < base.Batch*base.Rows; row++ {
		off := row * total
		for _, t := range ts {
			ch := t.shape.Channels
			copy(out.data[off:off+ch], t.data[row*ch:(row+1)*ch])
			off += ch
		}
	}

	return out, nil
}
