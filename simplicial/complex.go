// SPDX-License-Identifier: MIT
// Package: hodgenet/simplicial
//
// complex.go — per-level index tables.
//
// Invariants (hold for every *Complex handed out by this package):
//   • levels[k] contains only canonical k-simplices, without duplicates.
//   • Insertion order fixes index positions; Index(s) is the inverse of At(i).
//   • Closure: every face of every simplex at level k ≥ 1 is present at level k-1.
//   • A Complex is never mutated after construction; concurrent readers are safe.

package simplicial

// Level holds the k-simplices of one dimension in insertion order together
// with the simplex→index lookup used by boundary assembly.
type Level struct {
	dim       int
	simplices []Simplex
	index     map[string]int
}

func newLevel(dim, capHint int) *Level {
	return &Level{
		dim:       dim,
		simplices: make([]Simplex, 0, capHint),
		index:     make(map[string]int, capHint),
	}
}

// add appends a canonical simplex; it reports false (and does nothing) for a duplicate.
func (l *Level) add(s Simplex) bool {
	key := s.Key()
	if _, dup := l.index[key]; dup {
		return false
	}
	l.index[key] = len(l.simplices)
	l.simplices = append(l.simplices, s)

	return true
}

// Dim returns k.
func (l *Level) Dim() int { return l.dim }

// Len returns n_k.
func (l *Level) Len() int { return len(l.simplices) }

// At returns a copy of the i-th simplex (panics on an out-of-range i, like a slice).
func (l *Level) At(i int) Simplex {
	out := make(Simplex, len(l.simplices[i]))
	copy(out, l.simplices[i])

	return out
}

// Index returns the position of s within the level.
func (l *Level) Index(s Simplex) (int, bool) {
	i, ok := l.index[s.Key()]

	return i, ok
}

// Simplices returns a deep copy of the level in index order.
func (l *Level) Simplices() []Simplex {
	out := make([]Simplex, len(l.simplices))
	for i := range l.simplices {
		out[i] = l.At(i)
	}

	return out
}

// Do visits simplices in index order without copying; f must not retain or mutate s.
// Iteration stops when f returns false.
func (l *Level) Do(f func(i int, s Simplex) bool) {
	for i, s := range l.simplices {
		if !f(i, s) {
			return
		}
	}
}

// Complex is a validated, immutable simplicial complex: levels 0..MaxDim.
type Complex struct {
	levels []*Level
}

// NumLevels returns MaxDim()+1.
func (c *Complex) NumLevels() int { return len(c.levels) }

// MaxDim returns the highest level index (which may hold zero simplices).
func (c *Complex) MaxDim() int { return len(c.levels) - 1 }

// Level returns level k, or nil when k is outside [0, MaxDim].
func (c *Complex) Level(k int) *Level {
	if k < 0 || k >= len(c.levels) {
		return nil
	}

	return c.levels[k]
}

// Count returns n_k; levels outside the complex count as empty.
func (c *Complex) Count(k int) int {
	if l := c.Level(k); l != nil {
		return l.Len()
	}

	return 0
}

// Counts returns [n_0, ..., n_MaxDim].
func (c *Complex) Counts() []int {
	out := make([]int, len(c.levels))
	for k, l := range c.levels {
		out[k] = l.Len()
	}

	return out
}

// NumVertices returns n_0.
func (c *Complex) NumVertices() int { return c.Count(0) }

// EulerCharacteristic returns Σ_k (-1)^k n_k.
func (c *Complex) EulerCharacteristic() int {
	chi := 0
	for k, l := range c.levels {
		if k%2 == 0 {
			chi += l.Len()
		} else {
			chi -= l.Len()
		}
	}

	return chi
}

// checkClosure verifies that every face of every simplex is present one level down.
// Complexity: O(Σ_k n_k·(k+1)·k).
func (c *Complex) checkClosure() error {
	var k int
	for k = 1; k < len(c.levels); k++ {
		below := c.levels[k-1]
		var err error
		c.levels[k].Do(func(_ int, s Simplex) bool {
			for _, f := range s.Faces() {
				if _, ok := below.Index(f); !ok {
					err = structuralf(k, s, f, ErrMissingFace, "")
					return false
				}
			}
			return true
		})
		if err != nil {
			return err
		}
	}

	return nil
}
