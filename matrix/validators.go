// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for operand checks.
//  - Keep kernels minimal by delegating nil/shape checks here.
//
// Note:
//  - Composite validators follow a fixed sequence: NotNil → Shape.
//  - Validators return sentinels or typed errors unwrapped; facades add the op tag.

package matrix

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *Sparse) error {
	if m == nil {
		return ErrNilMatrix
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and have equal dimensions.
// Returns ErrNilMatrix or a *DimensionError ("shapes differ").
// Complexity: O(1).
func ValidateSameShape(op string, a, b *Sparse) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.rows != b.rows || a.cols != b.cols {
		return &DimensionError{
			Op: op, Reason: reasonShapesDiffer,
			ARows: a.rows, ACols: a.cols, BRows: b.rows, BCols: b.cols,
		}
	}

	return nil
}

// ValidateMulCompatible ensures a and b are non-nil and a.Cols() == b.Rows().
// Returns ErrNilMatrix or a *DimensionError ("incompatible for multiplication").
// Complexity: O(1).
func ValidateMulCompatible(a, b *Sparse) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.cols != b.rows {
		return &DimensionError{
			Op: opMultiply, Reason: reasonIncompatibleMul,
			ARows: a.rows, ACols: a.cols, BRows: b.rows, BCols: b.cols,
		}
	}

	return nil
}
