// Package sfno implements the spectral network that runs on a Ready
// hodge.Complex: per-level spectral convolution in the Hodge eigenbasis,
// boundary coupling between neighbouring levels, and the layered Network
// that stacks them.
//
// A layer computes, for every level k with n_k > 0,
//
//	Y_k = LayerNorm(Act(α_k·S_k(X_k) + C_k(X) + R_k·X_k))
//
// where S_k is a SpectralConv, C_k a BoundaryCoupling and R_k a bias-free
// Linear. Empty levels are passed through unchanged.
//
// The spectral filter is a sealed variant chosen in Config.Filter:
// ModeWiseFilter (a free matrix per mode) or PolynomialFilter (Chebyshev
// coefficients in the normalised eigenvalue). SpectralConv switches on the
// concrete type.
//
// Network brackets the stack with per-level input/output projections and can
// fuse parallel branch stacks at level 0 (Config.UseBranches). Forward and
// ForwardTrace are safe for concurrent use; Update serialises parameter
// changes against them.
//
// Shape problems are reported as *ShapeMismatchError before any arithmetic
// and match ErrShapeMismatch with errors.Is.
package sfno
