// SPDX-License-Identifier: MIT
// Package: hodgenet/simplicial
//
// build.go — the three ways to obtain a *Complex.
//
// Contract:
//   • New validates everything (arity, repeated vertices, negative vertices,
//     duplicates, closure) because it accepts caller-supplied levels verbatim.
//   • FromEdges / FromSequence derive higher levels from lower ones and are
//     closed by construction; they only validate their own arguments.
//   • Every failure is a *StructuralError; no partially built complex escapes.

package simplicial

import "sort"

const (
	methodNew          = "New"
	methodFromEdges    = "FromEdges"
	methodFromSequence = "FromSequence"
)

// New builds a complex from per-level simplex lists: levels[k] holds k-simplices,
// each an unordered tuple of k+1 distinct vertices. Level 0 defines the vertex set.
// Trailing empty levels are legal (a two-vertex complex with levels [[{0},{1}],[]]
// has n = [2, 0]).
//
// Errors (all *StructuralError):
//   - ErrInvalidInput when no level is given.
//   - ErrWrongArity, ErrRepeatedVertex, ErrVertexOutOfRange per simplex.
//   - ErrDuplicateSimplex when two entries coincide after sorting.
//   - ErrMissingFace when closure under faces fails (Face names the missing face).
//
// Complexity: O(Σ_k n_k·k log k) canonicalisation + O(Σ_k n_k·k²) closure check.
func New(levels [][][]int) (*Complex, error) {
	if len(levels) == 0 {
		return nil, structuralf(-1, nil, nil, ErrInvalidInput, "%s: no levels", methodNew)
	}
	c := &Complex{levels: make([]*Level, len(levels))}
	for k, raw := range levels {
		lvl := newLevel(k, len(raw))
		for _, vs := range raw {
			given := append(Simplex(nil), vs...)
			if len(vs) != k+1 {
				return nil, structuralf(k, given, nil, ErrWrongArity, "want %d vertices, got %d", k+1, len(vs))
			}
			s, err := Canonical(vs)
			if err != nil {
				return nil, structuralf(k, given, nil, err, "")
			}
			if !lvl.add(s) {
				return nil, structuralf(k, given, nil, ErrDuplicateSimplex, "")
			}
		}
		c.levels[k] = lvl
	}
	if err := c.checkClosure(); err != nil {
		return nil, err
	}

	return c, nil
}

// FromEdges derives a complex from an undirected edge list over vertices 0..numVertices-1.
//   - Level 0: every vertex, in index order.
//   - Level 1: edges canonicalised to (min,max), deduplicated keeping first occurrence;
//     self-loops are dropped.
//   - Level 2 (includeTriangles): every u<v<w whose three edges are present, emitted in
//     lexicographic order. The level exists (possibly empty) whenever requested.
//
// Errors: ErrInvalidInput (numVertices < 0), ErrVertexOutOfRange (endpoint ∉ [0,numVertices)).
// Complexity: O(V + E log E + Σ_v deg(v)²).
func FromEdges(numVertices int, edges [][2]int, includeTriangles bool) (*Complex, error) {
	if numVertices < 0 {
		return nil, structuralf(-1, nil, nil, ErrInvalidInput, "%s: numVertices=%d", methodFromEdges, numVertices)
	}
	vertices := newLevel(0, numVertices)
	for v := 0; v < numVertices; v++ {
		vertices.add(Simplex{v})
	}

	lines := newLevel(1, len(edges))
	adj := make([][]int, numVertices)
	for _, e := range edges {
		u, v := e[0], e[1]
		for _, x := range [2]int{u, v} {
			if x < 0 || x >= numVertices {
				return nil, structuralf(1, Simplex{u, v}, nil, ErrVertexOutOfRange,
					"vertex %d not in [0,%d)", x, numVertices)
			}
		}
		if u == v {
			continue
		}
		if u > v {
			u, v = v, u
		}
		if lines.add(Simplex{u, v}) {
			adj[u] = append(adj[u], v)
		}
	}
	c := &Complex{levels: []*Level{vertices, lines}}
	if !includeTriangles {
		return c, nil
	}

	// adj[u] lists only larger neighbours; sorting makes emission lexicographic.
	for u := range adj {
		sort.Ints(adj[u])
	}
	faces := newLevel(2, 0)
	for u := 0; u < numVertices; u++ {
		for _, v := range adj[u] {
			for _, w := range adj[v] {
				if _, ok := lines.Index(Simplex{u, w}); ok {
					faces.add(Simplex{u, v, w})
				}
			}
		}
	}
	c.levels = append(c.levels, faces)

	return c, nil
}

// FromSequence derives a complex over positions 0..length-1 of a linear sequence.
//   - Level 0: positions. Level 1: consecutive pairs (i,i+1).
//   - When window ≥ 3 and length ≥ 3, sliding-window triples (i,i+1,i+2) become
//     2-simplices, and their chords (i,i+2) are appended to level 1 so the complex
//     stays closed under faces. Otherwise level 2 is omitted.
//   - Counts with triples: n_0 = length, n_1 = 2·length−3 (pairs plus chords),
//     n_2 = length−2. Without triples n_1 = max(length−1, 0).
//
// Errors: ErrInvalidInput for negative length or window.
// Complexity: O(length).
func FromSequence(length, window int) (*Complex, error) {
	if length < 0 || window < 0 {
		return nil, structuralf(-1, nil, nil, ErrInvalidInput,
			"%s: length=%d window=%d", methodFromSequence, length, window)
	}
	withTriples := window >= 3 && length >= 3

	vertices := newLevel(0, length)
	for i := 0; i < length; i++ {
		vertices.add(Simplex{i})
	}
	lines := newLevel(1, 2*length)
	for i := 0; i+1 < length; i++ {
		lines.add(Simplex{i, i + 1})
	}
	c := &Complex{levels: []*Level{vertices, lines}}
	if !withTriples {
		return c, nil
	}
	faces := newLevel(2, length-2)
	for i := 0; i+2 < length; i++ {
		lines.add(Simplex{i, i + 2})
		faces.add(Simplex{i, i + 1, i + 2})
	}
	c.levels = append(c.levels, faces)

	return c, nil
}
