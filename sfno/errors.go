// SPDX-License-Identifier: MIT
// Package sfno: sentinel errors and the ShapeMismatchError carrier.
//
// Error policy:
//   • Shape problems are detected at the operator boundary, before any
//     arithmetic, and are never downgraded.
//   • ErrShapeMismatch is shared with package tensor so a mismatch found
//     deep inside a kernel matches the same errors.Is target.

package sfno

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hodgenet/tensor"
)

var (
	// ErrShapeMismatch marks a feature tensor whose rows, channels or batch
	// disagree with the complex or the operator.
	ErrShapeMismatch = tensor.ErrShapeMismatch

	// ErrInvalidConfig marks a Config that cannot describe a network.
	ErrInvalidConfig = errors.New("sfno: invalid config")

	// ErrLevelCount marks a level list whose length differs from the complex or config.
	ErrLevelCount = errors.New("sfno: level count mismatch")

	// ErrParamShape marks an Update that resized a parameter.
	ErrParamShape = errors.New("sfno: parameter resized")
)

// ShapeMismatchError names the operator and level where a shape check failed.
// A negative field in Want means "unconstrained".
type ShapeMismatchError struct {
	Op    string
	Level int
	Want  tensor.Shape
	Got   tensor.Shape
}

// Error implements error.
func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("sfno: %s: level %d: want %s, got %v", e.Op, e.Level, wantString(e.Want), e.Got)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

func wantString(s tensor.Shape) string {
	dim := func(v int) string {
		if v < 0 {
			return "*"
		}
		return fmt.Sprint(v)
	}

	return dim(s.Batch) + "×" + dim(s.Rows) + "×" + dim(s.Channels)
}

// checkShape compares got against want, treating negative want fields as wildcards.
func checkShape(op string, level int, want, got tensor.Shape) error {
	if (want.Batch >= 0 && want.Batch != got.Batch) ||
		(want.Rows >= 0 && want.Rows != got.Rows) ||
		(want.Channels >= 0 && want.Channels != got.Channels) {
		return &ShapeMismatchError{Op: op, Level: level, Want: want, Got: got}
	}

	return nil
}

func configErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("sfno: %s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}
