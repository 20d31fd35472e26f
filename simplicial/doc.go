// Package simplicial validates and canonicalises combinatorial input into the
// per-dimension index tables every downstream operator is built from.
//
// A Complex is a list of levels; level k holds k-simplices (k+1 sorted vertex
// indices) in a fixed order, and Level.Index maps a simplex back to its row or
// column position. Complexes are closed under taking faces and are immutable.
//
// Three constructors are provided:
//
//   - New accepts levels verbatim and checks arity, duplicates, vertex range
//     and closure, failing with a *StructuralError.
//   - FromEdges derives vertices, deduplicated undirected edges and, on request,
//     triangles from an edge list.
//   - FromSequence derives a path over sequence positions plus sliding-window
//     triples.
//
// Example:
//
//	c, err := simplicial.FromEdges(3, [][2]int{{0, 1}, {1, 2}, {0, 2}}, true)
//	if err != nil {
//		return err
//	}
//	fmt.Println(c.Counts()) // [3 3 1]
package simplicial
