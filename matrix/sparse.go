// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Sparse storage: an integer matrix that keeps only non-zero entries in a
//     dictionary keyed by (row, col).
//   - Sparse values returned by constructors and operations are never mutated
//     afterwards; only explicit Set calls change an instance.

package matrix

import (
	"fmt"
	"sort"
)

// Sparse is a rows×cols integer matrix backed by a (row, col) → value map.
// Absent keys read as 0. rows and cols are fixed at construction.
type Sparse struct {
	rows, cols int             // declared shape, immutable
	data       map[index]int64 // stored entries
	opts       Options         // policy inherited by derived matrices
}

// sparseErrorf wraps an underlying error with Sparse method context.
func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Sparse.%s(%d,%d): %w", method, row, col, err)
}

// NewSparse creates an empty rows×cols Sparse matrix.
// Stage 1 (Validate): ensure rows and cols are non-negative.
// Stage 2 (Prepare): resolve options and allocate the entry map.
// Complexity: O(1).
func NewSparse(rows, cols int, opts ...Option) (*Sparse, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewSparse(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return newSparse(rows, cols, gatherOptions(opts...)), nil
}

// newSparse allocates without validation; callers guarantee a legal shape.
func newSparse(rows, cols int, o Options) *Sparse {
	return &Sparse{rows: rows, cols: cols, data: make(map[index]int64), opts: o}
}

// Rows returns the declared number of rows.
func (m *Sparse) Rows() int {
	if m == nil {
		return 0
	}

	return m.rows
}

// Cols returns the declared number of columns.
func (m *Sparse) Cols() int {
	if m == nil {
		return 0
	}

	return m.cols
}

// Dims returns (rows, cols).
func (m *Sparse) Dims() (int, int) { return m.Rows(), m.Cols() }

// Nnz returns the number of stored entries. Under WithKeepZeros this may
// include explicit zeros.
// Complexity: O(1).
func (m *Sparse) Nnz() int {
	if m == nil {
		return 0
	}

	return len(m.data)
}

// MaxAbs returns the largest magnitude among stored values, 0 when empty.
// The result is unsigned so that |math.MinInt64| = 1<<63 is representable.
// Complexity: O(nnz).
func (m *Sparse) MaxAbs() uint64 {
	if m == nil {
		return 0
	}
	var peak uint64
	for _, v := range m.data {
		if a := absU(v); a > peak {
			peak = a
		}
	}

	return peak
}

// Options returns the policy this matrix was created with.
func (m *Sparse) Options() Options {
	if m == nil {
		return defaultOptions()
	}

	return m.opts
}

// At returns the value at (row, col), or 0 when nothing is stored there.
// At is total: coordinates outside the declared shape also read as 0.
// Complexity: O(1) expected.
func (m *Sparse) At(row, col int) int64 {
	if m == nil {
		return 0
	}

	return m.data[index{row, col}]
}

// Set stores v at (row, col), overwriting any previous value.
// Stage 1 (Validate): receiver non-nil; bounds when the policy requires it.
// Stage 2 (Execute): write, or delete when v == 0 under zero pruning.
// A zero write always clears a previous non-zero value logically.
// Complexity: O(1) expected.
func (m *Sparse) Set(row, col int, v int64) error {
	if m == nil {
		return sparseErrorf("Set", row, col, ErrNilMatrix)
	}
	if m.opts.boundsCheck && !m.inBounds(row, col) {
		return sparseErrorf("Set", row, col, ErrOutOfRange)
	}
	m.store(index{row, col}, v)

	return nil
}

// inBounds reports whether (row, col) lies inside the declared shape.
func (m *Sparse) inBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// store writes without validation, honoring the zero policy.
func (m *Sparse) store(k index, v int64) {
	if v == 0 && !m.opts.keepZeros {
		delete(m.data, k)
		return
	}
	m.data[k] = v
}

// sortedKeys returns the stored keys in row-major order.
// Every traversal that accumulates goes through here so that results, and
// the point at which an overflow is detected, are reproducible.
// Complexity: O(nnz log nnz).
func (m *Sparse) sortedKeys() []index {
	keys := make([]index, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	return keys
}

// Entries returns every stored entry in row-major order.
// The slice is freshly allocated; modifying it does not affect m.
func (m *Sparse) Entries() []Entry {
	if m == nil {
		return nil
	}
	keys := m.sortedKeys()
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = Entry{Row: k.row, Col: k.col, Value: m.data[k]}
	}

	return out
}

// Each calls fn for every stored entry in row-major order until fn returns false.
func (m *Sparse) Each(fn func(Entry) bool) {
	if m == nil {
		return
	}
	for _, k := range m.sortedKeys() {
		if !fn(Entry{Row: k.row, Col: k.col, Value: m.data[k]}) {
			return
		}
	}
}

// Clone returns a deep copy sharing no storage with m.
// Complexity: O(nnz).
func (m *Sparse) Clone() *Sparse {
	if m == nil {
		return nil
	}
	out := &Sparse{rows: m.rows, cols: m.cols, data: make(map[index]int64, len(m.data)), opts: m.opts}
	for k, v := range m.data {
		out.data[k] = v
	}

	return out
}

// Equal reports whether m and other have the same shape and the same logical
// value at every coordinate. Stored zeros compare equal to absent entries.
// Complexity: O(nnz(m) + nnz(other)).
func (m *Sparse) Equal(other *Sparse) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for k, v := range m.data {
		if other.data[k] != v {
			return false
		}
	}
	for k, v := range other.data {
		if m.data[k] != v {
			return false
		}
	}

	return true
}
