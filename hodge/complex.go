// SPDX-License-Identifier: MIT
// Package: hodgenet/hodge
//
// complex.go — the frozen, Ready complex and its staged construction.
//
// State machine:
//   Uninitialized → Validated → BoundariesBuilt → LaplaciansBuilt → SpectraComputed → Ready
//
// Contract:
//   • Build runs every stage; each stage fans out over levels in a bounded
//     errgroup and joins before the next stage starts.
//   • Any failure aborts construction: Build returns (nil, err), never a
//     partially built value.
//   • A Ready Complex is immutable; all accessors are safe for concurrent use.
//   • Accessors on a Complex that is not Ready (e.g. the zero value) return ErrNotReady.

package hodge

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hodgenet/matrix"
	"github.com/katalvlaran/hodgenet/simplicial"
)

const (
	opBuild      = "Build"
	opAccessor   = "Complex"
	opEigenpairs = "Complex.Eigenpairs"
)

// State is a construction stage.
type State int

const (
	// Uninitialized is the zero state.
	Uninitialized State = iota
	// Validated: the simplicial index tables are accepted.
	Validated
	// BoundariesBuilt: B_1..B_{K+1} exist.
	BoundariesBuilt
	// LaplaciansBuilt: L_0..L_K exist.
	LaplaciansBuilt
	// SpectraComputed: truncated eigenpairs exist for every level.
	SpectraComputed
	// Ready is terminal and immutable.
	Ready
)

var stateNames = [...]string{"Uninitialized", "Validated", "BoundariesBuilt", "LaplaciansBuilt", "SpectraComputed", "Ready"}

// String returns the stage name.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Complex is the frozen spectral view of a simplicial complex: per-level
// boundary operators, Hodge Laplacians, truncated eigenpairs and Betti numbers.
type Complex struct {
	id         uuid.UUID
	state      State
	sc         *simplicial.Complex
	boundaries []*matrix.Sparse // index k holds B_k; [0] is nil
	laplacians []*matrix.Sparse
	spectra    []Eigenpairs
	invariants []Invariant
	bettiTol   float64
}

// Build runs the full construction pipeline for sc.
//
// Errors:
//   - ErrNilComplex for a nil sc.
//   - *simplicial.StructuralError if boundary assembly finds an inconsistency.
//   - *NumericalError when both eigen tiers fail for a level.
//   - ctx.Err() on cancellation.
func Build(ctx context.Context, sc *simplicial.Complex, opts ...Option) (*Complex, error) {
	if sc == nil {
		return nil, hodgeErrorf(opBuild, ErrNilComplex)
	}
	o := resolveOptions(opts...)
	c := &Complex{id: uuid.New(), sc: sc, bettiTol: o.bettiTol}
	log := o.logger.With(zap.String("complex", c.id.String()))
	levels := sc.NumLevels()

	c.advance(log, Validated, zap.Ints("counts", sc.Counts()))

	// Stage: boundaries B_1..B_{K+1}.
	c.boundaries = make([]*matrix.Sparse, levels+1)
	if err := forEachLevel(ctx, o.workers, 1, levels+1, func(_ context.Context, k int) error {
		b, err := BoundaryOperator(sc, k)
		if err != nil {
			return fmt.Errorf("level %d: %w", k, err)
		}
		c.boundaries[k] = b
		return nil
	}); err != nil {
		return nil, hodgeErrorf(opBuild, err)
	}
	c.advance(log, BoundariesBuilt)

	// Stage: Laplacians L_0..L_K.
	c.laplacians = make([]*matrix.Sparse, levels)
	if err := forEachLevel(ctx, o.workers, 0, levels, func(_ context.Context, k int) error {
		l, err := HodgeLaplacian(sc.Count(k), c.boundaries[k], c.boundaries[k+1])
		if err != nil {
			return fmt.Errorf("level %d: %w", k, err)
		}
		c.laplacians[k] = l
		return nil
	}); err != nil {
		return nil, hodgeErrorf(opBuild, err)
	}
	c.advance(log, LaplaciansBuilt)

	// Stage: truncated spectra.
	c.spectra = make([]Eigenpairs, levels)
	if err := forEachLevel(ctx, o.workers, 0, levels, func(gctx context.Context, k int) error {
		e, err := decompose(gctx, c.laplacians[k], o.modesFor(k), solverConfig{
			tol: o.solverTol, maxIter: o.maxIter, seed: o.seed + int64(k), logger: log, level: k,
		})
		if err != nil {
			return err
		}
		c.spectra[k] = e
		return nil
	}); err != nil {
		return nil, hodgeErrorf(opBuild, err)
	}
	c.advance(log, SpectraComputed)

	c.invariants = make([]Invariant, levels)
	for k := 0; k < levels; k++ {
		inv := estimateInvariant(c.spectra[k], sc.Count(k), o.bettiTol)
		c.invariants[k] = inv
		if inv.Truncated {
			log.Info("betti number is a lower bound",
				zap.Int("level", k),
				zap.Int("n", sc.Count(k)),
				zap.Int("modes", c.spectra[k].Modes()),
				zap.Int("betti", inv.Count),
			)
		}
	}
	c.advance(log, Ready, zap.Ints("betti", c.BettiNumbers()))

	return c, nil
}

func (c *Complex) advance(log *zap.Logger, s State, fields ...zap.Field) {
	c.state = s
	log.Debug("complex stage", append([]zap.Field{zap.Stringer("state", s)}, fields...)...)
}

// forEachLevel runs fn for k in [lo, hi) on at most workers goroutines and joins them.
func forEachLevel(ctx context.Context, workers, lo, hi int, fn func(ctx context.Context, k int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k := lo; k < hi; k++ {
		k := k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, k)
		})
	}

	return g.Wait()
}

func (c *Complex) ready() error {
	if c == nil || c.state != Ready {
		return hodgeErrorf(opAccessor, ErrNotReady)
	}

	return nil
}

// checkLevel validates readiness before hi is evaluated, so hi may read fields of c.
func (c *Complex) checkLevel(tag string, k, lo int, hi func() int) error {
	if err := c.ready(); err != nil {
		return err
	}
	if top := hi(); k < lo || k > top {
		return levelErrorf(tag, k, lo, top)
	}

	return nil
}

// ID returns the construction identity (used in logs and cache diagnostics).
func (c *Complex) ID() uuid.UUID {
	if c == nil {
		return uuid.Nil
	}

	return c.id
}

// State returns the construction stage; every Complex returned by Build is Ready.
func (c *Complex) State() State {
	if c == nil {
		return Uninitialized
	}

	return c.state
}

// Simplicial returns the underlying index tables.
func (c *Complex) Simplicial() *simplicial.Complex {
	if c == nil {
		return nil
	}

	return c.sc
}

// MaxDim returns the top level index K (-1 for a not-ready complex).
func (c *Complex) MaxDim() int {
	if c.ready() != nil {
		return -1
	}

	return c.sc.MaxDim()
}

// Count returns n_k (0 outside the complex).
func (c *Complex) Count(k int) int {
	if c.ready() != nil {
		return 0
	}

	return c.sc.Count(k)
}

// Counts returns [n_0..n_K].
func (c *Complex) Counts() []int {
	if c.ready() != nil {
		return nil
	}

	return c.sc.Counts()
}

// Boundary returns B_k for k in [1, K+1] (B_{K+1} is n_K×0).
func (c *Complex) Boundary(k int) (*matrix.Sparse, error) {
	if err := c.checkLevel("Complex.Boundary", k, 1, func() int { return len(c.boundaries) - 1 }); err != nil {
		return nil, err
	}

	return c.boundaries[k], nil
}

// Laplacian returns L_k for k in [0, K].
func (c *Complex) Laplacian(k int) (*matrix.Sparse, error) {
	if err := c.checkLevel("Complex.Laplacian", k, 0, func() int { return len(c.laplacians) - 1 }); err != nil {
		return nil, err
	}

	return c.laplacians[k], nil
}

// Eigenpairs returns the truncated spectrum of level k.
func (c *Complex) Eigenpairs(k int) (Eigenpairs, error) {
	if err := c.checkLevel(opEigenpairs, k, 0, func() int { return len(c.spectra) - 1 }); err != nil {
		return Eigenpairs{}, err
	}

	return c.spectra[k], nil
}

// Betti returns β_k with its truncation flag.
func (c *Complex) Betti(k int) (Invariant, error) {
	if err := c.checkLevel("Complex.Betti", k, 0, func() int { return len(c.invariants) - 1 }); err != nil {
		return Invariant{}, err
	}

	return c.invariants[k], nil
}

// BettiNumbers returns [β_0..β_K] (lower bounds where truncated).
// Nil when the complex is not Ready.
func (c *Complex) BettiNumbers() []int {
	if c.ready() != nil {
		return nil
	}
	out := make([]int, len(c.invariants))
	for k, inv := range c.invariants {
		out[k] = inv.Count
	}

	return out
}

// Truncated reports whether level k's spectrum was cut below n_k.
func (c *Complex) Truncated(k int) bool {
	inv, err := c.Betti(k)

	return err == nil && inv.Truncated
}

// BettiTolerance returns the harmonic threshold the invariants were counted with.
func (c *Complex) BettiTolerance() float64 {
	if c == nil {
		return 0
	}

	return c.bettiTol
}

// EulerCharacteristic returns Σ_k (-1)^k n_k.
func (c *Complex) EulerCharacteristic() int {
	if c.ready() != nil {
		return 0
	}

	return c.sc.EulerCharacteristic()
}

// EulerFromBetti returns Σ_k (-1)^k β_k and whether every β_k is exact.
// The Euler–Poincaré identity EulerCharacteristic() == EulerFromBetti() is
// guaranteed only when exact is true. A not-Ready complex reports (0, false).
func (c *Complex) EulerFromBetti() (chi int, exact bool) {
	if c.ready() != nil {
		return 0, false
	}
	exact = true
	for k, inv := range c.invariants {
		if k%2 == 0 {
			chi += inv.Count
		} else {
			chi -= inv.Count
		}
		exact = exact && !inv.Truncated
	}

	return chi, exact
}
