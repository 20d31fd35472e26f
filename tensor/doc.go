// Package tensor provides the batch × rows × channels feature blocks that flow
// through the spectral network.
//
// Rows index the simplices of one level (n_k) and channels the feature width
// (C_k). Storage is a flat row-major float64 buffer with offset
// (b·rows + r)·channels + c. Zero-sized dimensions are legal: an empty level
// yields a batch × 0 × C tensor that every operation passes through.
//
// Operations are value-returning and never mutate their inputs:
//
//   - MulChannels applies a C_in×C_out weight to every row.
//   - MulRows / MulRowsTrans apply a dense row operator (e.g. an eigenbasis U
//     or Uᵀ) per batch element.
//   - MixRows applies a sparse row operator (e.g. a boundary matrix) per batch element.
//   - Add, Scale, AddBias, Apply and ConcatChannels cover the elementwise glue.
package tensor
