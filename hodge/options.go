// SPDX-License-Identifier: MIT
// Package: hodgenet/hodge
//
// options.go — functional options for Build.
//
// Contract (strict):
//   • Option constructors VALIDATE and PANIC on meaningless literals
//     (modes < 1, non-positive or non-finite tolerances, iteration cap < 1,
//     negative workers, nil logger). Build itself never panics.
//   • Defaults: 64 modes per level, Betti tolerance 1e-6, solver tolerance 1e-6,
//     1000 iterations, workers = GOMAXPROCS, silent logger, seed 1.

package hodge

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultMaxModes is M when neither WithMaxModes nor WithLevelModes apply.
	DefaultMaxModes = 64
	// DefaultBettiTolerance is the harmonic threshold on |λ|.
	DefaultBettiTolerance = 1e-6
	// DefaultSolverTolerance is the iterative-tier residual tolerance (scaled by max(1,σ)).
	DefaultSolverTolerance = 1e-6
	// DefaultMaxIterations caps the iterative tier.
	DefaultMaxIterations = 1000
	// DefaultSeed seeds the iterative tier's starting block.
	DefaultSeed int64 = 1
)

// Option configures Build.
type Option func(*options)

type options struct {
	maxModes   int
	levelModes map[int]int
	bettiTol   float64
	solverTol  float64
	maxIter    int
	workers    int
	logger     *zap.Logger
	seed       int64
}

func defaultOptions() options {
	return options{
		maxModes:  DefaultMaxModes,
		bettiTol:  DefaultBettiTolerance,
		solverTol: DefaultSolverTolerance,
		maxIter:   DefaultMaxIterations,
		workers:   0,
		logger:    zap.NewNop(),
		seed:      DefaultSeed,
	}
}

func resolveOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}

// modesFor returns the configured M for level k (before capping by n_k).
func (o options) modesFor(k int) int {
	if m, ok := o.levelModes[k]; ok {
		return m
	}

	return o.maxModes
}

// fingerprint renders the options that influence results as a stable string;
// logger and workers are excluded because they do not change the output.
func (o options) fingerprint() string {
	levels := make([]int, 0, len(o.levelModes))
	for k := range o.levelModes {
		levels = append(levels, k)
	}
	sort.Ints(levels)
	var b strings.Builder
	fmt.Fprintf(&b, "m=%d;bt=%g;st=%g;it=%d;seed=%d", o.maxModes, o.bettiTol, o.solverTol, o.maxIter, o.seed)
	for _, k := range levels {
		b.WriteString(";L")
		b.WriteString(strconv.Itoa(k))
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(o.levelModes[k]))
	}

	return b.String()
}

func requireFinitePositive(name string, v float64) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("hodge: %s(%v): must be finite and > 0", name, v))
	}
}

// WithMaxModes sets M for every level without a per-level override. Panics if m < 1.
func WithMaxModes(m int) Option {
	if m < 1 {
		panic(fmt.Sprintf("hodge: WithMaxModes(%d): must be >= 1", m))
	}
	return func(o *options) { o.maxModes = m }
}

// WithLevelModes overrides M for individual levels. Panics on a negative level or m < 1.
func WithLevelModes(modes map[int]int) Option {
	cp := make(map[int]int, len(modes))
	for k, m := range modes {
		if k < 0 || m < 1 {
			panic(fmt.Sprintf("hodge: WithLevelModes: level %d modes %d", k, m))
		}
		cp[k] = m
	}
	return func(o *options) {
		if o.levelModes == nil {
			o.levelModes = make(map[int]int, len(cp))
		}
		for k, m := range cp {
			o.levelModes[k] = m
		}
	}
}

// WithBettiTolerance sets the harmonic threshold: β_k counts |λ| < tol.
func WithBettiTolerance(tol float64) Option {
	requireFinitePositive("WithBettiTolerance", tol)
	return func(o *options) { o.bettiTol = tol }
}

// WithSolverTolerance sets the iterative-tier residual tolerance.
func WithSolverTolerance(tol float64) Option {
	requireFinitePositive("WithSolverTolerance", tol)
	return func(o *options) { o.solverTol = tol }
}

// WithMaxIterations sets the iterative-tier hard cap. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("hodge: WithMaxIterations(%d): must be >= 1", n))
	}
	return func(o *options) { o.maxIter = n }
}

// WithWorkers bounds per-level parallelism; 0 selects GOMAXPROCS. Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("hodge: WithWorkers(%d): must be >= 0", n))
	}
	return func(o *options) { o.workers = n }
}

// WithLogger routes construction events to l. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("hodge: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}

// WithSeed seeds the iterative tier's random starting block.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}
