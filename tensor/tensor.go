// SPDX-License-Identifier: MIT

// Package tensor - storage and safe accessors.
//
// Purpose:
//   - Hold one level's features for a whole batch in a single buffer.
//   - Keep shapes explicit (Shape) so shape errors name both operands.

package tensor

import (
	"fmt"
	"math"
)

// Shape is (Batch, Rows, Channels).
type Shape struct {
	Batch, Rows, Channels int
}

// String renders the shape as "B×R×C".
func (s Shape) String() string {
	return fmt.Sprintf("%d×%d×%d", s.Batch, s.Rows, s.Channels)
}

// Size returns Batch·Rows·Channels.
func (s Shape) Size() int { return s.Batch * s.Rows * s.Channels }

func (s Shape) valid() bool { return s.Batch >= 0 && s.Rows >= 0 && s.Channels >= 0 }

// Tensor is a dense batch × rows × channels block.
type Tensor struct {
	shape Shape
	data  []float64
}

// New returns a zero tensor. Errors: ErrInvalidShape for a negative dimension.
func New(batch, rows, channels int) (*Tensor, error) {
	s := Shape{batch, rows, channels}
	if !s.valid() {
		return nil, tensorErrorf("New", fmt.Errorf("%v: %w", s, ErrInvalidShape))
	}

	return &Tensor{shape: s, data: make([]float64, s.Size())}, nil
}

// FromSlice copies data (row-major, batch outermost) into a new tensor.
// Errors: ErrInvalidShape for a negative dimension or len(data) != batch·rows·channels.
func FromSlice(batch, rows, channels int, data []float64) (*Tensor, error) {
	t, err := New(batch, rows, channels)
	if err != nil {
		return nil, err
	}
	if len(data) != t.shape.Size() {
		return nil, tensorErrorf("FromSlice", fmt.Errorf("%v with %d values: %w", t.shape, len(data), ErrInvalidShape))
	}
	copy(t.data, data)

	return t, nil
}

// Zeros is New for callers that already validated the shape; it panics on a negative dimension.
func Zeros(s Shape) *Tensor {
	t, err := New(s.Batch, s.Rows, s.Channels)
	if err != nil {
		panic(err)
	}

	return t
}

// Shape returns the dimensions.
func (t *Tensor) Shape() Shape { return t.shape }

// Batch returns the batch size.
func (t *Tensor) Batch() int { return t.shape.Batch }

// Rows returns the row count (n_k).
func (t *Tensor) Rows() int { return t.shape.Rows }

// Channels returns the channel width.
func (t *Tensor) Channels() int { return t.shape.Channels }

// Empty reports whether the tensor holds no values.
func (t *Tensor) Empty() bool { return t.shape.Size() == 0 }

func (t *Tensor) offset(b, r, c int) int {
	return (b*t.shape.Rows+r)*t.shape.Channels + c
}

func (t *Tensor) inRange(b, r, c int) bool {
	return b >= 0 && b < t.shape.Batch && r >= 0 && r < t.shape.Rows && c >= 0 && c < t.shape.Channels
}

// At returns t[b,r,c]. Errors: ErrShapeMismatch for an out-of-range index.
func (t *Tensor) At(b, r, c int) (float64, error) {
	if !t.inRange(b, r, c) {
		return 0, fmt.Errorf("At(%d,%d,%d) on %v: %w", b, r, c, t.shape, ErrShapeMismatch)
	}

	return t.data[t.offset(b, r, c)], nil
}

// Set writes t[b,r,c]. Errors: ErrShapeMismatch for an out-of-range index.
func (t *Tensor) Set(b, r, c int, v float64) error {
	if !t.inRange(b, r, c) {
		return fmt.Errorf("Set(%d,%d,%d) on %v: %w", b, r, c, t.shape, ErrShapeMismatch)
	}
	t.data[t.offset(b, r, c)] = v

	return nil
}

// Row returns a copy of t[b,r,:].
func (t *Tensor) Row(b, r int) []float64 {
	out := make([]float64, t.shape.Channels)
	if t.shape.Channels > 0 {
		o := t.offset(b, r, 0)
		copy(out, t.data[o:o+t.shape.Channels])
	}

	return out
}

// Data returns a copy of the buffer.
func (t *Tensor) Data() []float64 {
	out := make([]float64, len(t.data))
	copy(out, t.data)

	return out
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{shape: t.shape, data: t.Data()}
}

// IsZero reports whether every entry is exactly 0.
func (t *Tensor) IsZero() bool {
	for _, v := range t.data {
		if v != 0 {
			return false
		}
	}

	return true
}

// AllFinite reports whether the tensor holds no NaN or ±Inf.
func (t *Tensor) AllFinite() bool {
	for _, v := range t.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// AllClose reports shape equality and |a-b| ≤ atol + rtol·|b| elementwise.
func AllClose(a, b *Tensor, rtol, atol float64) bool {
	if a == nil || b == nil || a.shape != b.shape {
		return false
	}
	for i, av := range a.data {
		bv := b.data[i]
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false
		}
	}

	return true
}
