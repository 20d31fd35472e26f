// SPDX-License-Identifier: MIT
// Package: hodgenet/hodge
//
// diagnostics.go — read-only spectral and structural summaries of a Ready complex.

package hodge

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hodgenet/matrix"
)

const (
	opEigenResidual = "Complex.EigenResidual"
	// PositiveEigenFloor excludes (near-)zero modes from heat-kernel and zeta sums.
	PositiveEigenFloor = 1e-8
	// weylFloor excludes harmonic modes from the Weyl-law fit.
	weylFloor = 1e-6
	// weylMinModes is the smallest positive spectrum the Weyl fit accepts.
	weylMinModes = 10
	// Clamp range of SpectralDimension.
	minSpectralDim = 0.5
	maxSpectralDim = 20.0
)

// SpectralGap returns the smallest computed eigenvalue of level k that is not
// harmonic (|λ| ≥ BettiTolerance). ErrNoSpectralGap when every computed mode is harmonic.
func (c *Complex) SpectralGap(k int) (float64, error) {
	e, err := c.Eigenpairs(k)
	if err != nil {
		return 0, err
	}
	for _, v := range e.values {
		if math.Abs(v) >= c.bettiTol {
			return v, nil
		}
	}

	return 0, fmt.Errorf("Complex.SpectralGap: level %d, %d modes: %w", k, e.Modes(), ErrNoSpectralGap)
}

// BoundaryDefect returns max |(B_k·B_{k+1})_ij| for k in [1, K]; it is 0 for a
// correctly assembled complex.
func (c *Complex) BoundaryDefect(k int) (float64, error) {
	if err := c.checkLevel("Complex.BoundaryDefect", k, 1, func() int { return len(c.boundaries) - 2 }); err != nil {
		return 0, err
	}
	prod, err := matrix.MulSparse(c.boundaries[k], c.boundaries[k+1])
	if err != nil {
		return 0, hodgeErrorf("Complex.BoundaryDefect", err)
	}

	return prod.MaxAbs(), nil
}

// EigenResidual returns ‖L_k·U − U·Λ‖_F over the computed modes of level k.
// It measures how far the stored spectrum is from exact eigenpairs; 0 when no mode was computed.
func (c *Complex) EigenResidual(k int) (float64, error) {
	e, err := c.Eigenpairs(k)
	if err != nil {
		return 0, err
	}
	m := e.Modes()
	if m == 0 {
		return 0, nil
	}
	u := e.Vectors()
	lu, err := c.laplacians[k].MulDense(u)
	if err != nil {
		return 0, hodgeErrorf(opEigenResidual, err)
	}
	scaled := u.Values()
	for i := range scaled {
		scaled[i] *= e.values[i%m]
	}
	ul, err := matrix.NewDenseFrom(e.n, m, scaled)
	if err != nil {
		return 0, hodgeErrorf(opEigenResidual, err)
	}
	diff, err := matrix.Sub(lu, ul)
	if err != nil {
		return 0, hodgeErrorf(opEigenResidual, err)
	}

	return matrix.FrobeniusNorm(diff)
}

// HeatKernelTrace returns Σ exp(-λt) over eigenvalues λ ≥ PositiveEigenFloor.
func HeatKernelTrace(values []float64, t float64) float64 {
	var sum float64
	for _, v := range values {
		if v >= PositiveEigenFloor {
			sum += math.Exp(-v * t)
		}
	}

	return sum
}

// SpectralZeta returns ζ(s) = Σ λ^{-s} over λ > PositiveEigenFloor, or +Inf if there is none.
func SpectralZeta(values []float64, s float64) float64 {
	var sum float64
	seen := false
	for _, v := range values {
		if v > PositiveEigenFloor {
			sum += math.Pow(v, -s)
			seen = true
		}
	}
	if !seen {
		return math.Inf(1)
	}

	return sum
}

// SpectralDimension estimates d_s from Weyl's law N(λ) ~ λ^{d_s/2}:
// a least-squares fit of log k against log λ_k over the middle 80% of the
// positive ascending eigenvalues. Returns 1 for fewer than 10 positive modes;
// the result is clamped to [0.5, 20].
func SpectralDimension(values []float64) float64 {
	pos := make([]float64, 0, len(values))
	for _, v := range values {
		if v > weylFloor {
			pos = append(pos, v)
		}
	}
	if len(pos) < weylMinModes {
		return 1
	}

	lo, hi := len(pos)/10, 9*len(pos)/10
	var sx, sy, sxx, sxy float64
	cnt := float64(hi - lo)
	for i := lo; i < hi; i++ {
		x := math.Log(pos[i])
		y := math.Log(float64(i + 1))
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	den := cnt*sxx - sx*sx
	if den == 0 {
		return 1
	}
	dim := 2 * (cnt*sxy - sx*sy) / den

	return math.Min(maxSpectralDim, math.Max(minSpectralDim, dim))
}

// EstimateBetti counts the harmonic modes of any symmetric Laplacian from a
// full dense decomposition, bypassing truncation.
func EstimateBetti(l *matrix.Sparse, tol float64) (int, error) {
	if l == nil {
		return 0, hodgeErrorf("EstimateBetti", matrix.ErrNilMatrix)
	}
	if l.Rows() == 0 {
		return 0, nil
	}
	vals, _, err := denseEigen(l)
	if err != nil {
		return 0, &NumericalError{Level: -1, Err: err}
	}

	return CountHarmonic(vals, tol), nil
}
