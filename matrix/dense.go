// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Interop with gonum dense matrices.
//   - Dense views are for verification and for handing data to gonum routines;
//     Sparse remains the storage and arithmetic type.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// int64 bounds as float64; 2^63 itself is not representable as int64.
const (
	minInt64Float = -9.223372036854775808e18
	maxInt64Float = 9.223372036854775808e18
)

// ToDense materializes m as a gonum *mat.Dense.
// Stage 1 (Validate): non-nil; every stored key inside the declared shape.
// Stage 2 (Execute): allocate rows×cols and scatter stored entries.
// A matrix with zero rows or columns yields an empty (zero-value) *mat.Dense,
// since gonum does not allocate zero-length matrices.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange (only reachable under WithoutBoundsCheck).
//
// Complexity:
//   - Time O(rows*cols + nnz), Space O(rows*cols).
//
// Notes:
//   - Values above 2^53 in magnitude lose precision in float64.
func (m *Sparse) ToDense() (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("ToDense: %w", err)
	}
	if m.rows == 0 || m.cols == 0 {
		return &mat.Dense{}, nil
	}

	d := mat.NewDense(m.rows, m.cols, nil)
	for k, v := range m.data {
		if !m.inBounds(k.row, k.col) {
			return nil, fmt.Errorf("ToDense: %w", sparseErrorf("At", k.row, k.col, ErrOutOfRange))
		}
		d.Set(k.row, k.col, float64(v))
	}

	return d, nil
}

// SparseFromDense converts any gonum matrix to Sparse, dropping zeros.
// Every value must be a finite integer within the int64 range.
//
// Errors:
//   - ErrNonIntegral for NaN, ±Inf, fractional or out-of-range values.
//
// Complexity:
//   - Time O(rows*cols), Space O(nnz).
func SparseFromDense(d mat.Matrix, opts ...Option) (*Sparse, error) {
	r, c := d.Dims()
	m, err := NewSparse(r, c, opts...)
	if err != nil {
		return nil, err
	}

	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v := d.At(i, j)
			if v == 0 {
				continue
			}
			if math.IsNaN(v) || v != math.Trunc(v) || v < minInt64Float || v >= maxInt64Float {
				return nil, fmt.Errorf("SparseFromDense: at (%d,%d) value %g: %w", i, j, v, ErrNonIntegral)
			}
			m.data[index{i, j}] = int64(v)
		}
	}

	return m, nil
}
