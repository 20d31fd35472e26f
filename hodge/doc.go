// Package hodge turns a validated simplicial complex into the frozen spectral
// object consumed by the network: signed boundary operators B_k, Hodge
// Laplacians L_k = B_kᵀB_k + B_{k+1}B_{k+1}ᵀ, truncated ascending eigenpairs
// and Betti numbers.
//
// Build walks the state machine
//
//	Uninitialized → Validated → BoundariesBuilt → LaplaciansBuilt → SpectraComputed → Ready
//
// fanning each stage out over levels on a bounded errgroup. Construction is
// all-or-nothing; only Ready complexes are ever returned.
//
// Spectra come from a two-tier solver. When fewer than n_k-1 modes are
// requested a block subspace iteration is tried first; if it fails to
// converge within the iteration cap a Warn is logged and a dense Jacobi
// decomposition is used instead. Betti numbers count eigenvalues below the
// configured tolerance; when the spectrum was truncated the count is a lower
// bound and Invariant.Truncated is set.
//
// Example:
//
//	sc, _ := simplicial.FromEdges(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 3}}, false)
//	hc, err := hodge.Build(ctx, sc, hodge.WithMaxModes(16))
//	if err != nil {
//		return err
//	}
//	fmt.Println(hc.BettiNumbers()) // [1 1]
//
// Cache memoises Ready complexes per derivation recipe and deduplicates
// concurrent builds of the same recipe.
package hodge
