// Package builder provides deterministic, functional-options topology
// generators that produce simplicial complexes for tests, examples and the
// hodgenet CLI.
//
// The package offers the following key components:
//
//   - Orchestrator:
//     – BuildComplex: resolves options, runs constructors in order over one
//     shared edge set, then derives the complex via simplicial.FromEdges.
//   - Constructors (vertex indices are fixed and documented per constructor):
//     – Cycle(n), Path(n), Star(n), Wheel(n), Complete(n),
//     CompleteBipartite(n1,n2), Grid(rows,cols), RandomSparse(n,p).
//   - Options:
//     – WithSeed / WithRand: RNG for stochastic constructors.
//     – WithTriangles: whether 2-simplices are filled in (default true).
//
// Guarantees:
//
//   - Constructors sharing vertex indices compose: edges accumulate over the
//     same vertex set, duplicates collapse.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Runtime parameter errors are sentinel-wrapped (errors.Is friendly).
//   - Same inputs, options and seed ⇒ identical complexes.
package builder
