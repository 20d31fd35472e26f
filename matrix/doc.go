// Package matrix offers the dense and sparse linear-algebra substrate for
// combinatorial operators.
//
// The matrix package provides:
//
//   - Dense, a row-major Matrix with safe At/Set and zero-size shapes.
//   - Sparse, an immutable CSR operator for signed incidence (boundary)
//     matrices and the Laplacians assembled from them.
//   - Kernels: Add, Sub, Mul, Transpose, Scale, Symmetrize,
//     AllClose, MaxAbs, FrobeniusNorm, MulSparse, AddSparse.
//   - EigenSym, a cyclic Jacobi solver for symmetric input, and
//     SortEigenAscending for canonical spectral ordering.
//   - ThinQR, an economy Householder QR used to keep trial blocks orthonormal.
//
// All kernels validate first and return sentinel errors (see errors.go)
// wrapped with the operation tag; nothing panics on user input.
package matrix
