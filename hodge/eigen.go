// SPDX-License-Identifier: MIT
// Package: hodgenet/hodge
//
// eigen.go — truncated spectra with an iterative tier and a dense fallback.
//
// Policy (per level, n = n_k, m = min(M, n)):
//   • n == 0            → empty Eigenpairs.
//   • m < n-1           → iterative tier (block subspace iteration); on ErrNotConverged or
//                         any numerical error, log a Warn and run the dense tier.
//   • otherwise         → dense tier directly.
//   • Always sort ascending afterwards; no solver's own order is trusted.
//
// Iterative tier:
//   • Work on A = σI − L with σ = Gershgorin bound ≥ λ_max(L), so the m smallest
//     eigenvalues of L are the m dominant eigenvalues of A (all ≥ 0).
//   • Block of p = min(n, m + max(4, m/2)) columns: A·Q, ThinQR, Rayleigh–Ritz on
//     H = QᵀLQ (p×p dense Jacobi), rotate Q onto the Ritz vectors.
//   • Converged when ‖L·x_i − θ_i·x_i‖ ≤ tol·max(1,σ) for the m smallest Ritz pairs.
//   • Hard cap maxIter; exhaustion is ErrNotConverged.
//
// Dense tier: cyclic Jacobi (matrix.EigenSym) on the densified Laplacian, then truncate.

package hodge

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/hodgenet/matrix"
)

const (
	opDecompose = "Decompose"
	opSubspace  = "SubspaceIteration"

	// jacobiTol is the dense tier's off-diagonal threshold relative to max(1, max|L|).
	jacobiTol = 1e-12
	// minGuardVectors is the smallest number of extra block columns in the iterative tier.
	minGuardVectors = 4
)

// Tier records which solver produced a spectrum.
type Tier int

const (
	// TierNone marks an empty level.
	TierNone Tier = iota
	// TierIterative marks a converged subspace iteration.
	TierIterative
	// TierDense marks a direct dense decomposition.
	TierDense
	// TierFallback marks a dense decomposition after iterative failure.
	TierFallback
)

// String returns the tier name used in logs.
func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierIterative:
		return "iterative"
	case TierDense:
		return "dense"
	case TierFallback:
		return "fallback"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Eigenpairs is an immutable truncated spectrum (Λ, U) of one level:
// ascending eigenvalues and the n×modes orthonormal eigenvector basis.
type Eigenpairs struct {
	values []float64
	basis  []float64 // row-major n×modes
	n      int
	tier   Tier
}

// newEigenpairs copies vals/vecs into an immutable Eigenpairs.
func newEigenpairs(vals []float64, vecs *matrix.Dense, tier Tier) Eigenpairs {
	v := make([]float64, len(vals))
	copy(v, vals)

	return Eigenpairs{values: v, basis: vecs.Values(), n: vecs.Rows(), tier: tier}
}

// Modes returns the number of computed eigenpairs.
func (e Eigenpairs) Modes() int { return len(e.values) }

// Dim returns n_k, the length of each eigenvector.
func (e Eigenpairs) Dim() int { return e.n }

// Tier reports which solver produced the spectrum.
func (e Eigenpairs) Tier() Tier { return e.tier }

// Value returns λ_i (ascending order).
func (e Eigenpairs) Value(i int) float64 { return e.values[i] }

// Values returns a copy of the eigenvalues.
func (e Eigenpairs) Values() []float64 {
	out := make([]float64, len(e.values))
	copy(out, e.values)

	return out
}

// Basis returns U[row, mode] (panics on out-of-range indices, like a slice).
func (e Eigenpairs) Basis(row, mode int) float64 {
	return e.basis[row*len(e.values)+mode]
}

// Vectors returns a fresh n×modes Dense copy of U.
func (e Eigenpairs) Vectors() *matrix.Dense {
	d, _ := matrix.NewDenseFrom(e.n, len(e.values), e.basis)

	return d
}

// solverConfig carries the per-call knobs of Decompose.
type solverConfig struct {
	tol     float64
	maxIter int
	seed    int64
	logger  *zap.Logger
	level   int
}

// Decompose computes at most m ascending eigenpairs of the symmetric PSD operator l
// following the two-tier policy above.
// Errors: *NumericalError when the dense tier fails; ctx.Err() on cancellation.
func Decompose(ctx context.Context, l *matrix.Sparse, m int, opts ...Option) (Eigenpairs, error) {
	o := resolveOptions(opts...)

	return decompose(ctx, l, m, solverConfig{
		tol: o.solverTol, maxIter: o.maxIter, seed: o.seed, logger: o.logger, level: -1,
	})
}

func decompose(ctx context.Context, l *matrix.Sparse, m int, cfg solverConfig) (Eigenpairs, error) {
	n := l.Rows()
	if n == 0 || m <= 0 {
		empty, _ := matrix.NewDense(n, 0)
		return newEigenpairs(nil, empty, TierNone), nil
	}
	if m > n {
		m = n
	}

	tier := TierDense
	if m < n-1 {
		vals, vecs, err := subspaceIterate(ctx, l, m, cfg)
		if err == nil {
			return sortedEigenpairs(vals, vecs, TierIterative, cfg.level)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Eigenpairs{}, ctxErr
		}
		cfg.logger.Warn("iterative eigensolver failed, falling back to dense",
			zap.Int("level", cfg.level),
			zap.Int("n", n),
			zap.Int("modes", m),
			zap.Error(err),
		)
		tier = TierFallback
	}

	vals, vecs, err := denseEigen(l)
	if err != nil {
		return Eigenpairs{}, &NumericalError{Level: cfg.level, Err: err}
	}
	sorted, err := sortedEigenpairs(vals, vecs, tier, cfg.level)
	if err != nil {
		return Eigenpairs{}, err
	}
	if sorted.Modes() == m {
		return sorted, nil
	}

	return truncate(sorted, m), nil
}

func sortedEigenpairs(vals []float64, vecs *matrix.Dense, tier Tier, level int) (Eigenpairs, error) {
	sv, sq, err := matrix.SortEigenAscending(vals, vecs)
	if err != nil {
		return Eigenpairs{}, &NumericalError{Level: level, Err: err}
	}

	return newEigenpairs(sv, sq, tier), nil
}

// truncate keeps the first m (smallest) eigenpairs.
func truncate(e Eigenpairs, m int) Eigenpairs {
	vecs, _ := e.Vectors().SliceCols(m)

	return newEigenpairs(e.values[:m], vecs, e.tier)
}

// denseEigen densifies l and runs cyclic Jacobi with a scale-aware tolerance.
func denseEigen(l *matrix.Sparse) ([]float64, *matrix.Dense, error) {
	tol := jacobiTol * math.Max(1, l.MaxAbs())

	return matrix.EigenSym(l.ToDense(), tol, matrix.DefaultJacobiSweeps)
}

// subspaceIterate is the iterative tier; see the file header for the algorithm.
// It returns m Ritz pairs (unsorted order is acceptable; callers sort) or ErrNotConverged.
func subspaceIterate(ctx context.Context, l *matrix.Sparse, m int, cfg solverConfig) ([]float64, *matrix.Dense, error) {
	n := l.Rows()
	p := m + max(minGuardVectors, m/2)
	if p > n {
		p = n
	}
	sigma := l.GershgorinBound()
	resTol := cfg.tol * math.Max(1, sigma)

	rng := rand.New(rand.NewSource(cfg.seed))
	start := make([]float64, n*p)
	for i := range start {
		start[i] = rng.NormFloat64()
	}
	block, err := matrix.NewDenseFrom(n, p, start)
	if err != nil {
		return nil, nil, hodgeErrorf(opSubspace, err)
	}
	q, _, err := matrix.ThinQR(block)
	if err != nil {
		return nil, nil, hodgeErrorf(opSubspace, err)
	}

	for it := 0; it < cfg.maxIter; it++ {
		if err = ctx.Err(); err != nil {
			return nil, nil, err
		}
		// Power step on A = σI − L.
		lq, err := l.MulDense(q)
		if err != nil {
			return nil, nil, hodgeErrorf(opSubspace, err)
		}
		sq, err := matrix.Scale(q, sigma)
		if err != nil {
			return nil, nil, hodgeErrorf(opSubspace, err)
		}
		aq, err := matrix.Sub(sq, lq)
		if err != nil {
			return nil, nil, hodgeErrorf(opSubspace, err)
		}
		if q, _, err = matrix.ThinQR(aq); err != nil {
			return nil, nil, hodgeErrorf(opSubspace, err)
		}

		// Rayleigh–Ritz on the refreshed block.
		thetas, ritz, lx, err := rayleighRitz(l, q)
		if err != nil {
			return nil, nil, hodgeErrorf(opSubspace, err)
		}
		q = ritz
		if residualsBelow(thetas, ritz, lx, m, resTol) {
			vecs, err := ritz.SliceCols(m)
			if err != nil {
				return nil, nil, hodgeErrorf(opSubspace, err)
			}
			return thetas[:m], vecs, nil
		}
	}

	return nil, nil, hodgeErrorf(opSubspace, fmt.Errorf("%d iterations, n=%d, m=%d: %w", cfg.maxIter, n, m, ErrNotConverged))
}

// rayleighRitz returns the ascending Ritz values θ, Ritz vectors X = Q·W and L·X.
func rayleighRitz(l *matrix.Sparse, q *matrix.Dense) ([]float64, *matrix.Dense, *matrix.Dense, error) {
	lq, err := l.MulDense(q)
	if err != nil {
		return nil, nil, nil, err
	}
	qt, err := matrix.Transpose(q)
	if err != nil {
		return nil, nil, nil, err
	}
	h, err := matrix.Mul(qt, lq)
	if err != nil {
		return nil, nil, nil, err
	}
	if h, err = matrix.Symmetrize(h); err != nil {
		return nil, nil, nil, err
	}
	hMax, _ := matrix.MaxAbs(h)
	theta, w, err := matrix.EigenSym(h, jacobiTol*math.Max(1, hMax), matrix.DefaultJacobiSweeps)
	if err != nil {
		return nil, nil, nil, err
	}
	if theta, w, err = matrix.SortEigenAscending(theta, w); err != nil {
		return nil, nil, nil, err
	}
	x, err := matrix.Mul(q, w)
	if err != nil {
		return nil, nil, nil, err
	}
	lx, err := matrix.Mul(lq, w)
	if err != nil {
		return nil, nil, nil, err
	}

	return theta, x, lx, nil
}

// residualsBelow reports whether ‖L·x_i − θ_i·x_i‖₂ ≤ tol for the first m Ritz pairs.
func residualsBelow(theta []float64, x, lx *matrix.Dense, m int, tol float64) bool {
	n := x.Rows()
	xv, lv := x.Values(), lx.Values()
	cols := x.Cols()
	var i, r int
	var acc, d float64
	for i = 0; i < m; i++ {
		acc = 0
		for r = 0; r < n; r++ {
			d = lv[r*cols+i] - theta[i]*xv[r*cols+i]
			acc += d * d
		}
		if math.Sqrt(acc) > tol {
			return false
		}
	}

	return true
}
