// SPDX-License-Identifier: MIT
package hodge_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/matrix"
)

func TestSpectralGap(t *testing.T) {
	// L_0 of the 4-cycle has spectrum {0, 2, 2, 4}.
	hc := mustBuild(t, mustEdges(t, 4, cycleEdges(4), false))
	gap, err := hc.SpectralGap(0)
	require.NoError(t, err)
	assert.InDelta(t, 2, gap, 1e-9)

	// Two isolated vertices: only harmonic modes.
	iso := mustBuild(t, mustEdges(t, 2, nil, false))
	_, err = iso.SpectralGap(0)
	assert.ErrorIs(t, err, hodge.ErrNoSpectralGap)
	_, err = iso.SpectralGap(7)
	assert.ErrorIs(t, err, hodge.ErrLevelOutOfRange)
}

func TestBoundaryDefect_Range(t *testing.T) {
	hc := mustBuild(t, mustEdges(t, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}}, true))
	for k := 1; k <= 2; k++ {
		d, err := hc.BoundaryDefect(k)
		require.NoError(t, err)
		assert.Zero(t, d)
	}
	_, err := hc.BoundaryDefect(3)
	assert.ErrorIs(t, err, hodge.ErrLevelOutOfRange)
}

func TestEigenResidual(t *testing.T) {
	dense := mustBuild(t, mustEdges(t, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}}, true))
	for k := 0; k <= dense.MaxDim(); k++ {
		r, err := dense.EigenResidual(k)
		require.NoError(t, err)
		assert.Less(t, r, 1e-9, "level %d", k)
	}

	iter := mustBuild(t, mustEdges(t, 30, cycleEdges(30), false), hodge.WithMaxModes(4))
	e, err := iter.Eigenpairs(0)
	require.NoError(t, err)
	require.Equal(t, hodge.TierIterative, e.Tier())
	r, err := iter.EigenResidual(0)
	require.NoError(t, err)
	assert.Less(t, r, 1e-4)

	_, err = iter.EigenResidual(2)
	assert.ErrorIs(t, err, hodge.ErrLevelOutOfRange)
	var none *hodge.Complex
	_, err = none.EigenResidual(0)
	assert.ErrorIs(t, err, hodge.ErrNotReady)
}

func TestHeatKernelTraceAndZeta(t *testing.T) {
	vals := []float64{0, 1e-9, 1, 4}
	assert.InDelta(t, math.Exp(-0.5)+math.Exp(-2), hodge.HeatKernelTrace(vals, 0.5), 1e-12)
	assert.InDelta(t, 1.25, hodge.SpectralZeta(vals, 1), 1e-12)
	assert.InDelta(t, 1.0625, hodge.SpectralZeta(vals, 2), 1e-12)
	assert.True(t, math.IsInf(hodge.SpectralZeta([]float64{0, 1e-10}, 1), 1))
	assert.Zero(t, hodge.HeatKernelTrace(nil, 1))
}

func TestSpectralDimension(t *testing.T) {
	// λ_k = k gives log k = log λ_k, i.e. d_s = 2.
	linear := make([]float64, 100)
	// λ_k = k² gives d_s = 1.
	quadratic := make([]float64, 100)
	// λ_k = k^0.05 fits d_s = 40, clamped.
	flat := make([]float64, 100)
	for i := range linear {
		k := float64(i + 1)
		linear[i] = k
		quadratic[i] = k * k
		flat[i] = math.Pow(k, 0.05)
	}
	assert.InDelta(t, 2, hodge.SpectralDimension(linear), 1e-9)
	assert.InDelta(t, 1, hodge.SpectralDimension(quadratic), 1e-9)
	assert.Equal(t, 20.0, hodge.SpectralDimension(flat))
	assert.Equal(t, 1.0, hodge.SpectralDimension([]float64{0, 1, 2, 3}))
}

func TestEstimateBetti(t *testing.T) {
	hc := mustBuild(t, mustEdges(t, 4, cycleEdges(4), false))
	l1, err := hc.Laplacian(1)
	require.NoError(t, err)
	b, err := hodge.EstimateBetti(l1, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 1, b)

	empty, err := matrix.ZeroSparse(0, 0)
	require.NoError(t, err)
	b, err = hodge.EstimateBetti(empty, 1e-6)
	require.NoError(t, err)
	assert.Zero(t, b)

	_, err = hodge.EstimateBetti(nil, 1e-6)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
