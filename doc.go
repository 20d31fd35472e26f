// Package hodgenet computes the Hodge spectra of simplicial complexes and runs
// learnable spectral operators over features attached to every level of a
// complex: vertices, edges, triangles and beyond.
//
// 🚀 What is in the box?
//
//	• Complexes: direct construction with closure checks, derivation from
//	  edge lists (optional triangle filling) and from sequences (window ≥ 3
//	  adds chords and consecutive triples)
//	• Operators: signed boundary matrices B_k and Hodge Laplacians
//	  L_k = B_kᵀB_k + B_{k+1}B_{k+1}ᵀ in CSR form
//	• Spectra: truncated eigenpairs with an iterative tier and a dense
//	  fallback, Betti numbers with a truncation flag, spectral diagnostics
//	• Networks: per-level spectral convolution (mode-wise or Chebyshev),
//	  boundary coupling between adjacent levels, branch fusion and
//	  tropical output
//
// ✨ Why hodgenet?
//
//   - Frozen complexes – every operator is built once and shared read-only
//   - Explicit failures – structural, numerical and shape errors are typed
//   - Bounded parallelism – per-level work runs on an errgroup
//
// Packages:
//
//	matrix/     — dense and CSR kernels, symmetric Jacobi eigensolver
//	simplicial/ — simplex index tables and complex derivation
//	builder/    — deterministic topology generators (cycle, grid, wheel…)
//	hodge/      — boundaries, Laplacians, spectra, invariants, recipe cache
//	tensor/     — batch × rows × channels feature tensors
//	sfno/       — spectral convolution, coupling, layers and networks
//	config/     — YAML configuration, env overrides, logger construction
//	cmd/hodgenet — inspect and forward from the command line
//
// Quick ASCII example:
//
//	    0───1
//	    │ ╲ │
//	    3───2
//
//	two filled triangles sharing the edge 0–2: β = [1, 0, 0].
//
//	go get github.com/katalvlaran/hodgenet
package hodgenet
