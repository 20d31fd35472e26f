// SPDX-License-Identifier: MIT
// Package: hodgenet/hodge
//
// errors.go — sentinel errors and the NumericalError carrier.
//
// Error policy:
//   • Structural failures come from package simplicial (*simplicial.StructuralError)
//     and are propagated unchanged (never downgraded).
//   • ErrNotConverged is recovered locally by the dense tier; it reaches the
//     caller only inside a *NumericalError when the dense tier fails as well.
//   • Accessors return ErrLevelOutOfRange / ErrNotReady instead of panicking.

package hodge

import (
	"errors"
	"fmt"
)

var (
	// ErrNilComplex is returned by Build when no simplicial complex is supplied.
	ErrNilComplex = errors.New("hodge: nil simplicial complex")

	// ErrNotReady is returned by accessors of a Complex that did not reach Ready.
	ErrNotReady = errors.New("hodge: complex is not ready")

	// ErrLevelOutOfRange marks a level index outside the complex.
	ErrLevelOutOfRange = errors.New("hodge: level out of range")

	// ErrNotConverged marks iterative-tier exhaustion of the iteration cap.
	ErrNotConverged = errors.New("hodge: iterative eigensolver did not converge")

	// ErrNoSpectralGap marks a level whose computed spectrum has no eigenvalue above tolerance.
	ErrNoSpectralGap = errors.New("hodge: no non-harmonic eigenvalue computed")
)

// NumericalError is fatal: both eigen tiers failed for Level.
type NumericalError struct {
	Level int
	Err   error
}

// Error implements error.
func (e *NumericalError) Error() string {
	return fmt.Sprintf("hodge: level %d: numerical failure: %v", e.Level, e.Err)
}

// Unwrap exposes the underlying cause (e.g. matrix.ErrMatrixEigenFailed).
func (e *NumericalError) Unwrap() error { return e.Err }

// hodgeErrorf wraps err with an operation tag, preserving it via %w.
func hodgeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// levelErrorf reports an out-of-range level for an accessor.
func levelErrorf(tag string, k, lo, hi int) error {
	return fmt.Errorf("%s: level %d not in [%d,%d]: %w", tag, k, lo, hi, ErrLevelOutOfRange)
}
