// Package matrix offers Sparse, an integer matrix that stores only its
// non-zero entries, together with a line-oriented text codec and the three
// core arithmetic operations.
//
// The matrix package provides:
//
//   - Sparse with O(1) expected element reads and writes and O(nnz) memory.
//   - Parse / Decode / ParseFile and Encode for the text encoding:
//
//     rows=2
//     cols=2
//     (0, 0, 5)
//     (1, 1, 3)
//
//   - Add, Subtract and Multiply (sparse×sparse by default), plus Scale,
//     Negate and Transpose. Operands are never mutated.
//   - Op / ParseOp / Apply for callers that choose an operation at run time.
//   - ToDense / SparseFromDense bridging to gonum.org/v1/gonum/mat.
//
// Errors are sentinels matched with errors.Is (ErrMalformedInput,
// ErrDimensionMismatch, ErrOutOfRange, ...); *ParseError and *DimensionError
// carry the detail. Behavior is tuned with functional options such as
// WithKeepZeros, WithNaiveMultiply and WithStrictFormat.
//
// See the examples in this package for usage patterns.
package matrix
