// SPDX-License-Identifier: MIT
// Package: hodgenet/simplicial
//
// errors.go — sentinel errors and the StructuralError carrier.
//
// Error policy:
//   • Sentinels are package-level variables; callers branch with errors.Is.
//   • Every validation failure is returned as *StructuralError, which names the
//     offending level, simplex and (for closure violations) the missing face,
//     and unwraps to exactly one sentinel.
//   • Nothing in this package panics on user input.

package simplicial

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks an unusable top-level argument (no levels, negative sizes).
	ErrInvalidInput = errors.New("simplicial: invalid input")

	// ErrWrongArity marks a simplex at level k that does not have k+1 vertices.
	ErrWrongArity = errors.New("simplicial: wrong simplex arity for level")

	// ErrRepeatedVertex marks a simplex that lists the same vertex twice.
	ErrRepeatedVertex = errors.New("simplicial: repeated vertex in simplex")

	// ErrVertexOutOfRange marks a negative vertex, or one outside the declared vertex count.
	ErrVertexOutOfRange = errors.New("simplicial: vertex index out of range")

	// ErrDuplicateSimplex marks two entries of one level that coincide after canonical sorting.
	ErrDuplicateSimplex = errors.New("simplicial: duplicate simplex")

	// ErrMissingFace marks a violation of closure under faces.
	ErrMissingFace = errors.New("simplicial: missing face")
)

// StructuralError reports malformed or non-closed input. It is fatal:
// construction aborts and no complex is returned.
type StructuralError struct {
	Level   int     // level of the offending simplex (-1 when not level-specific)
	Simplex Simplex // offending simplex, as supplied
	Face    Simplex // missing face (closure violations only)
	Err     error   // one of the package sentinels
}

// Error implements error.
func (e *StructuralError) Error() string {
	switch {
	case e.Face != nil:
		return fmt.Sprintf("level %d simplex %v: face %v: %v", e.Level, []int(e.Simplex), []int(e.Face), e.Err)
	case e.Simplex != nil:
		return fmt.Sprintf("level %d simplex %v: %v", e.Level, []int(e.Simplex), e.Err)
	case e.Level >= 0:
		return fmt.Sprintf("level %d: %v", e.Level, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap exposes the sentinel to errors.Is.
func (e *StructuralError) Unwrap() error { return e.Err }

// structuralf builds a *StructuralError; detail (optional) is appended to the sentinel.
func structuralf(level int, s, face Simplex, sentinel error, format string, args ...interface{}) error {
	err := sentinel
	if format != "" {
		err = fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
	}

	return &StructuralError{Level: level, Simplex: s, Face: face, Err: err}
}
