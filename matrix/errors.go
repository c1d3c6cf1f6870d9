// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Sentinel error set plus the two typed errors that carry parse and shape
//     detail.
//   - All operations MUST return these sentinels (directly or wrapped) and
//     tests MUST check them via errors.Is. No operation panics on
//     user-triggered input.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Facades wrap with fmt.Errorf("Op: %w", ErrX);
// callers still match with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape -> dimension mismatch -> bounds -> overflow.

var (
	// ErrBadShape is returned when requested shape is invalid (rows<0 or cols<0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside the declared bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Subtract on different shapes, or Multiply where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrMalformedInput signals text that does not follow the header+entries grammar.
	ErrMalformedInput = errors.New("matrix: malformed input")

	// ErrNilMatrix indicates that a nil *Sparse (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrOverflow signals that an intermediate or final value left the int64 range.
	ErrOverflow = errors.New("matrix: integer overflow")

	// ErrUnknownOp is returned by ParseOp/Apply for an unrecognized operation selector.
	ErrUnknownOp = errors.New("matrix: unknown operation")

	// ErrNonIntegral signals a dense value that cannot be represented as int64 exactly.
	ErrNonIntegral = errors.New("matrix: non-integral value")
)

// Dimension mismatch reasons. Add/Subtract and Multiply violate different
// constraints and report them distinctly.
const (
	reasonShapesDiffer    = "shapes differ"
	reasonIncompatibleMul = "incompatible for multiplication"
)

// DimensionError describes a shape conflict between two operands.
// It matches ErrDimensionMismatch via errors.Is.
type DimensionError struct {
	Op           string // operation tag (Add, Subtract, Multiply)
	Reason       string // violated constraint
	ARows, ACols int    // left operand shape
	BRows, BCols int    // right operand shape
}

// Error implements error.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: %s (%dx%d vs %dx%d)",
		ErrDimensionMismatch, e.Reason, e.ARows, e.ACols, e.BRows, e.BCols)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// ParseError reports where and why a text encoding was rejected.
// Err is ErrMalformedInput for grammar violations, ErrBadShape for negative
// headers and ErrOutOfRange for entries outside the declared bounds.
type ParseError struct {
	Line   int    // 1-based line number; 0 when the input as a whole is at fault
	Text   string // offending line, trimmed
	Reason string // human-readable description
	Err    error  // sentinel cause
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v: %s", e.Err, e.Reason)
	}

	return fmt.Sprintf("%v: line %d: %s: %q", e.Err, e.Line, e.Reason, e.Text)
}

// Unwrap exposes the sentinel cause for errors.Is.
func (e *ParseError) Unwrap() error { return e.Err }
