// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Functional configuration for sparse storage, parsing and arithmetic
//     policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//
// Notes:
//   - Options are captured by a matrix at construction and inherited by every
//     result derived from it (left operand wins for binary operations).
//   - Parse-only flags (strict format) are ignored by arithmetic.

package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultBoundsCheck rejects Set/Parse coordinates outside the declared shape.
	DefaultBoundsCheck = true

	// DefaultKeepZeros controls whether zero values are stored explicitly.
	// false ⇒ a zero Set removes the entry (logically identical, less memory).
	DefaultKeepZeros = false

	// DefaultNaiveMultiply selects the dense-inner-loop product.
	// false ⇒ sparse×sparse product over stored entries only.
	DefaultNaiveMultiply = false

	// DefaultStrictFormat requires the exact ", " entry separator when parsing.
	// false ⇒ any whitespace around entry fields is tolerated.
	DefaultStrictFormat = false
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	boundsCheck   bool // DefaultBoundsCheck
	keepZeros     bool // DefaultKeepZeros
	naiveMultiply bool // DefaultNaiveMultiply
	strictFormat  bool // DefaultStrictFormat
}

// ---------- Constructors (WithX) ----------

// WithBoundsCheck enables coordinate validation against the declared shape (default).
// Complexity: O(1).
func WithBoundsCheck() Option {
	return func(o *Options) { o.boundsCheck = true }
}

// WithoutBoundsCheck disables coordinate validation.
// Set and Parse then accept any coordinate, matching the permissive loader
// where declared dimensions are advisory only.
//
// Notes:
//   - Arithmetic still validates operand shapes; only element coordinates are unchecked.
//   - Negative coordinates are accepted too; At simply reads them back.
func WithoutBoundsCheck() Option {
	return func(o *Options) { o.boundsCheck = false }
}

// WithKeepZeros stores zero values explicitly instead of deleting the entry.
// Nnz then counts stored zeros; At, Equal and every operation are unaffected.
func WithKeepZeros() Option {
	return func(o *Options) { o.keepZeros = true }
}

// WithPruneZeros removes entries whose value becomes zero (default).
func WithPruneZeros() Option {
	return func(o *Options) { o.keepZeros = false }
}

// WithNaiveMultiply selects the product that walks every column of the right
// operand for each stored entry of the left one.
//
// Complexity:
//   - Time O(nnz(A) * cols(B)), independent of the sparsity of B.
//
// Notes:
//   - Kept for parity checks against the sparse kernel; both agree exactly.
func WithNaiveMultiply() Option {
	return func(o *Options) { o.naiveMultiply = true }
}

// WithSparseMultiply selects the sparse×sparse product (default).
//
// Complexity:
//   - Time O(nnz(B) + nnz(A) * avg-row-density(B)).
func WithSparseMultiply() Option {
	return func(o *Options) { o.naiveMultiply = false }
}

// WithStrictFormat requires entry lines to use exactly "(r, c, v)" spacing.
func WithStrictFormat() Option {
	return func(o *Options) { o.strictFormat = true }
}

// WithRelaxedFormat tolerates arbitrary whitespace around entry fields (default).
func WithRelaxedFormat() Option {
	return func(o *Options) { o.strictFormat = false }
}

// ---------- Internal helpers ----------

// defaultOptions returns Options populated with the documented defaults.
func defaultOptions() Options {
	return Options{
		boundsCheck:   DefaultBoundsCheck,
		keepZeros:     DefaultKeepZeros,
		naiveMultiply: DefaultNaiveMultiply,
		strictFormat:  DefaultStrictFormat,
	}
}

// gatherOptions applies opts in order over the defaults. Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// NewSparseOptions resolves opts into an Options value.
// Useful for callers that want to inspect the effective policy.
func NewSparseOptions(opts ...Option) Options { return gatherOptions(opts...) }

// BoundsCheck reports whether coordinates are validated.
func (o Options) BoundsCheck() bool { return o.boundsCheck }

// KeepZeros reports whether zero values are stored explicitly.
func (o Options) KeepZeros() bool { return o.keepZeros }

// NaiveMultiply reports whether the dense-inner-loop product is selected.
func (o Options) NaiveMultiply() bool { return o.naiveMultiply }

// StrictFormat reports whether the parser requires the exact ", " separator.
func (o Options) StrictFormat() bool { return o.strictFormat }
