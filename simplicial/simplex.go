// SPDX-License-Identifier: MIT
// Package: hodgenet/simplicial
//
// simplex.go — the canonical Simplex value.
//
// Contract:
//   • A Simplex is a strictly increasing tuple of non-negative vertex indices.
//   • Face(p) deletes the vertex at sorted position p; the result is still canonical.
//   • Key() is the map key used by every index table in this module.

package simplicial

import (
	"sort"
	"strconv"
	"strings"
)

// Simplex is a canonical (sorted, duplicate-free) vertex tuple.
// A k-simplex has k+1 vertices.
type Simplex []int

// Canonical returns a sorted copy of vertices.
// Errors: ErrVertexOutOfRange for a negative vertex, ErrRepeatedVertex on duplicates.
// The returned error is a bare sentinel; callers attach level context.
func Canonical(vertices []int) (Simplex, error) {
	s := make(Simplex, len(vertices))
	copy(s, vertices)
	sort.Ints(s)
	for i, v := range s {
		if v < 0 {
			return nil, ErrVertexOutOfRange
		}
		if i > 0 && s[i-1] == v {
			return nil, ErrRepeatedVertex
		}
	}

	return s, nil
}

// Dim returns len(s)-1 (a vertex is 0-dimensional).
func (s Simplex) Dim() int { return len(s) - 1 }

// Key renders the simplex as "v0,v1,...". Stable for canonical simplices.
func (s Simplex) Key() string {
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}

// Face returns s with the vertex at position p removed. p must be in [0, len(s)).
func (s Simplex) Face(p int) Simplex {
	f := make(Simplex, 0, len(s)-1)
	f = append(f, s[:p]...)

	return append(f, s[p+1:]...)
}

// Faces returns all codimension-1 faces in deletion-position order,
// so Faces()[p] carries boundary sign (-1)^p.
func (s Simplex) Faces() []Simplex {
	if len(s) < 2 {
		return nil
	}
	out := make([]Simplex, len(s))
	for p := range s {
		out[p] = s.Face(p)
	}

	return out
}

// Equal reports element-wise equality.
func (s Simplex) Equal(o Simplex) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}

	return true
}
