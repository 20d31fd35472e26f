// SPDX-License-Identifier: MIT
// Package tensor: sentinel errors.
// Operations return these sentinels wrapped with an operation tag; callers
// match with errors.Is.

package tensor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape marks a negative dimension or a data buffer of the wrong length.
	ErrInvalidShape = errors.New("tensor: invalid shape")

	// ErrShapeMismatch marks operands whose shapes are incompatible.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrNilTensor marks a nil operand.
	ErrNilTensor = errors.New("tensor: nil tensor")
)

// tensorErrorf tags err with an operation name, preserving it for errors.Is.
func tensorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// mismatchf reports two incompatible shapes.
func mismatchf(tag string, a, b Shape) error {
	return fmt.Errorf("%s: %v vs %v: %w", tag, a, b, ErrShapeMismatch)
}
