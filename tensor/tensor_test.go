// SPDX-License-Identifier: MIT
package tensor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgenet/matrix"
	"github.com/katalvlaran/hodgenet/tensor"
)

func mustTensor(t *testing.T, b, r, c int, vals ...float64) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(b, r, c, vals)
	require.NoError(t, err)

	return x
}

func mustDense(t *testing.T, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return d
}

func TestNewAndAccessors(t *testing.T) {
	x, err := tensor.New(2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{Batch: 2, Rows: 3, Channels: 4}, x.Shape())
	assert.Equal(t, "2×3×4", x.Shape().String())
	assert.True(t, x.IsZero())

	require.NoError(t, x.Set(1, 2, 3, 7))
	v, err := x.At(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
	assert.Equal(t, []float64{0, 0, 0, 7}, x.Row(1, 2))

	_, err = x.At(2, 0, 0)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.ErrorIs(t, x.Set(0, 3, 0, 1), tensor.ErrShapeMismatch)

	_, err = tensor.New(-1, 0, 0)
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)
	_, err = tensor.FromSlice(1, 2, 2, []float64{1})
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)

	empty, err := tensor.New(3, 0, 5)
	require.NoError(t, err)
	assert.True(t, empty.Empty())
	assert.Equal(t, 5, empty.Channels())
}

func TestCloneAndDataAreCopies(t *testing.T) {
	x := mustTensor(t, 1, 1, 2, 1, 2)
	c := x.Clone()
	require.NoError(t, c.Set(0, 0, 0, 9))
	d := x.Data()
	d[1] = 9
	assert.Equal(t, []float64{1, 2}, x.Data())
}

func TestMulChannels(t *testing.T) {
	x := mustTensor(t, 2, 1, 2, 1, 2, 3, 4)
	w := mustDense(t, 2, 3, 1, 0, 1, 0, 1, 1)
	y, err := tensor.MulChannels(x, w)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{Batch: 2, Rows: 1, Channels: 3}, y.Shape())
	assert.Equal(t, []float64{1, 2, 3, 3, 4, 7}, y.Data())

	_, err = tensor.MulChannels(x, mustDense(t, 3, 1, 1, 1, 1))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = tensor.MulChannels(nil, w)
	assert.ErrorIs(t, err, tensor.ErrNilTensor)
}

func TestMulRowsRoundTrip(t *testing.T) {
	// U has orthonormal columns, so U·(Uᵀ·X) is the projection of X onto span(U).
	s := 1 / math.Sqrt2
	u := mustDense(t, 2, 2, s, s, s, -s)
	x := mustTensor(t, 1, 2, 2, 1, 2, 3, 4)

	coeff, err := tensor.MulRowsTrans(u, x)
	require.NoError(t, err)
	assert.InDelta(t, 4*s, coeff.Data()[0], 1e-12)

	back, err := tensor.MulRows(u, coeff)
	require.NoError(t, err)
	assert.True(t, tensor.AllClose(back, x, 0, 1e-12))

	_, err = tensor.MulRows(mustDense(t, 2, 3, 0, 0, 0, 0, 0, 0), x)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = tensor.MulRowsTrans(mustDense(t, 3, 2, 0, 0, 0, 0, 0, 0), x)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestMulRowsTruncatedBasis(t *testing.T) {
	u := mustDense(t, 3, 1, 1, 0, 0)
	x := mustTensor(t, 1, 3, 1, 5, 6, 7)
	coeff, err := tensor.MulRowsTrans(u, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, coeff.Data())
	back, err := tensor.MulRows(u, coeff)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0, 0}, back.Data())
}

func TestMixRows(t *testing.T) {
	// Boundary of a single edge (0,1): rows are vertices.
	b, err := matrix.NewSparse(2, 1, []matrix.Triplet{{Row: 0, Col: 0, Val: -1}, {Row: 1, Col: 0, Val: 1}})
	require.NoError(t, err)
	edge := mustTensor(t, 1, 1, 2, 3, 4)
	y, err := tensor.MixRows(b, edge)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -4, 3, 4}, y.Data())

	vt, err := tensor.MixRows(b.Transpose(), y)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 8}, vt.Data())

	_, err = tensor.MixRows(b, y)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	zero, err := matrix.ZeroSparse(3, 0)
	require.NoError(t, err)
	none, err := tensor.New(2, 0, 4)
	require.NoError(t, err)
	z, err := tensor.MixRows(zero, none)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{Batch: 2, Rows: 3, Channels: 4}, z.Shape())
	assert.True(t, z.IsZero())
}

func TestElementwise(t *testing.T) {
	a := mustTensor(t, 1, 2, 1, 1, -2)
	b := mustTensor(t, 1, 2, 1, 3, 4)

	s, err := tensor.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 2}, s.Data())

	sum, err := tensor.Sum(nil, a, b, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0}, sum.Data())
	_, err = tensor.Sum(nil, nil)
	assert.ErrorIs(t, err, tensor.ErrNilTensor)

	assert.Equal(t, []float64{2, -4}, tensor.Scale(a, 2).Data())
	assert.Equal(t, []float64{1, 0}, tensor.Apply(a, func(v float64) float64 { return math.Max(v, 0) }).Data())

	biased, err := tensor.AddBias(a, []float64{10})
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 8}, biased.Data())
	_, err = tensor.AddBias(a, []float64{1, 2})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = tensor.Add(a, mustTensor(t, 1, 1, 2, 0, 0))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, []float64{1, -2}, a.Data())
}

func TestApplyRows(t *testing.T) {
	x := mustTensor(t, 1, 2, 2, 1, 3, 5, 2)
	y := tensor.ApplyRows(x, func(in, out []float64) {
		out[0] = in[0] + in[1]
	})
	assert.Equal(t, []float64{4, 0, 7, 0}, y.Data())
}

func TestConcatChannels(t *testing.T) {
	a := mustTensor(t, 1, 2, 1, 1, 2)
	b := mustTensor(t, 1, 2, 2, 3, 4, 5, 6)
	c, err := tensor.ConcatChannels(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{Batch: 1, Rows: 2, Channels: 3}, c.Shape())
	assert.Equal(t, []float64{1, 3, 4, 2, 5, 6}, c.Data())

	_, err = tensor.ConcatChannels(a, mustTensor(t, 1, 1, 1, 0))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = tensor.ConcatChannels()
	assert.ErrorIs(t, err, tensor.ErrNilTensor)
}

func TestAllClose(t *testing.T) {
	a := mustTensor(t, 1, 1, 2, 1, 2)
	b := mustTensor(t, 1, 1, 2, 1, 2+1e-10)
	assert.True(t, tensor.AllClose(a, b, 0, 1e-9))
	assert.False(t, tensor.AllClose(a, b, 0, 1e-12))
	assert.False(t, tensor.AllClose(a, mustTensor(t, 1, 2, 1, 1, 2), 1, 1))
	assert.True(t, a.AllFinite())
}
