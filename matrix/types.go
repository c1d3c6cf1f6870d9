// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Domain types shared by storage, codec and arithmetic.

package matrix

// index is the composite (row, col) key of the sparse store.
// Using a flat struct key avoids per-row inner maps entirely: reading a row
// that was never written allocates nothing.
type index struct {
	row int // row index
	col int // column index
}

// less orders keys row-major; used to make every traversal deterministic.
func (a index) less(b index) bool {
	if a.row != b.row {
		return a.row < b.row
	}

	return a.col < b.col
}

// Entry is one stored (row, col, value) triple.
type Entry struct {
	Row   int
	Col   int
	Value int64
}
