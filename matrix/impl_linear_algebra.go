// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Arithmetic kernels of Sparse: addition, subtraction, multiplication,
//     scaling and transpose.
//   - Every kernel validates operands first and fails fast with a sentinel.
//   - Every kernel allocates exactly one fresh result; operands are never mutated.
//
// Determinism:
//   - Accumulation walks stored keys in row-major order, so results and the
//     first detected overflow are identical across runs.
//   - Results are checked; a value outside the int64 range yields ErrOverflow
//     instead of a silently wrapped value. Products accumulate each cell in
//     128 bits, so only the final cell value has to fit.

package matrix

import (
	"fmt"
	"math"
	"math/bits"
	"sort"
)

// Operation name constants for unified error wrapping.
const (
	opAdd       = "Add"
	opSubtract  = "Subtract"
	opMultiply  = "Multiply"
	opScale     = "Scale"
	opTranspose = "Transpose"
)

// matrixErrorf wraps err with an operation tag, preserving it via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// overflowAt builds the overflow error for coordinate k.
func overflowAt(tag string, k index) error {
	return matrixErrorf(tag, fmt.Errorf("at (%d,%d): %w", k.row, k.col, ErrOverflow))
}

// addChecked returns a+b and false if the sum overflows int64.
func addChecked(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}

	return s, true
}

// subChecked returns a-b and false if the difference overflows int64.
func subChecked(a, b int64) (int64, bool) {
	d := a - b
	if (b > 0 && d > a) || (b < 0 && d < a) {
		return 0, false
	}

	return d, true
}

// mulChecked returns a*b and false if the product overflows int64.
func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}

	return p, true
}

// addSub computes out = a + b (sign > 0) or out = a - b (sign < 0).
// Implementation:
//   - Stage 1: ValidateSameShape(a, b); allocate result with a's policy.
//   - Stage 2: copy a verbatim.
//   - Stage 3: fold every stored entry of b into the result in row-major order.
//
// Complexity:
//   - Time O(nnz(a) + nnz(b) log nnz(b)), Space O(nnz(a) + nnz(b)).
func addSub(a, b *Sparse, sign int, opTag string) (*Sparse, error) {
	if err := ValidateSameShape(opTag, a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	res := newSparse(a.rows, a.cols, a.opts)
	for k, v := range a.data {
		res.data[k] = v
	}

	var (
		v  int64
		ok bool
	)
	for _, k := range b.sortedKeys() {
		if sign > 0 {
			v, ok = addChecked(res.data[k], b.data[k])
		} else {
			v, ok = subChecked(res.data[k], b.data[k])
		}
		if !ok {
			return nil, overflowAt(opTag, k)
		}
		res.store(k, v)
	}

	return res, nil
}

// Add returns m + other as a new matrix.
//
// Errors:
//   - ErrNilMatrix, *DimensionError (ErrDimensionMismatch, "shapes differ"), ErrOverflow.
//
// Complexity:
//   - Time O(nnz(m) + nnz(other) log nnz(other)).
func (m *Sparse) Add(other *Sparse) (*Sparse, error) { return addSub(m, other, +1, opAdd) }

// Subtract returns m - other as a new matrix. Subtract is not commutative:
// m.Subtract(o) is the negation of o.Subtract(m).
//
// Errors:
//   - ErrNilMatrix, *DimensionError (ErrDimensionMismatch, "shapes differ"), ErrOverflow.
func (m *Sparse) Subtract(other *Sparse) (*Sparse, error) { return addSub(m, other, -1, opSubtract) }

// wide is a signed 128-bit two's complement accumulator for one product cell.
// Each term is a product of two int64 values (|term| <= 2^126), so any sum
// with fewer than 2^63 terms cannot wrap.
type wide struct {
	hi, lo uint64
}

// absU returns |v| as uint64; math.MinInt64 maps to 1<<63.
func absU(v int64) uint64 {
	if v < 0 {
		return ^uint64(v) + 1
	}

	return uint64(v)
}

// wideMul returns a*b exactly.
func wideMul(a, b int64) wide {
	hi, lo := bits.Mul64(absU(a), absU(b))
	if (a < 0) != (b < 0) {
		var borrow uint64
		lo, borrow = bits.Sub64(0, lo, 0)
		hi, _ = bits.Sub64(0, hi, borrow)
	}

	return wide{hi: hi, lo: lo}
}

// add returns w+x modulo 2^128.
func (w wide) add(x wide) wide {
	lo, carry := bits.Add64(w.lo, x.lo, 0)
	hi, _ := bits.Add64(w.hi, x.hi, carry)

	return wide{hi: hi, lo: lo}
}

// narrow converts w to int64, reporting false when it lies outside the int64 range.
func (w wide) narrow() (int64, bool) {
	switch {
	case w.hi == 0 && w.lo <= math.MaxInt64:
		return int64(w.lo), true
	case w.hi == math.MaxUint64 && w.lo > math.MaxInt64:
		return int64(w.lo), true
	default:
		return 0, false
	}
}

// Multiply returns the matrix product m × other with shape m.Rows() × other.Cols().
// Implementation:
//   - Stage 1: ValidateMulCompatible (m.Cols() == other.Rows()).
//   - Stage 2: accumulate every cell in 128 bits with m's kernel: sparse×sparse
//     (default) or naive.
//   - Stage 3: narrow each cell to int64 in row-major order.
//
// Errors:
//   - ErrNilMatrix, *DimensionError (ErrDimensionMismatch, "incompatible for
//     multiplication"), ErrOverflow when a final cell value does not fit int64.
//     Intermediate sums may leave the range as long as the cell comes back.
//
// Determinism:
//   - Both kernels produce the exact cell sums, so they agree, overflow included;
//     the reported cell is the first overflowing one in row-major order.
//
// Notes:
//   - The sparse kernel indexes other by row once; reuse a matrix as the right
//     operand rather than its transpose to benefit from that.
func (m *Sparse) Multiply(other *Sparse) (*Sparse, error) {
	if err := ValidateMulCompatible(m, other); err != nil {
		return nil, matrixErrorf(opMultiply, err)
	}

	var acc map[index]wide
	if m.opts.naiveMultiply {
		acc = mulNaive(m, other)
	} else {
		acc = mulSparse(m, other)
	}

	keys := make([]index, 0, len(acc))
	for k := range acc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	res := newSparse(m.rows, other.cols, m.opts)
	for _, k := range keys {
		v, ok := acc[k].narrow()
		if !ok {
			return nil, overflowAt(opMultiply, k)
		}
		res.store(k, v)
	}

	return res, nil
}

// rowIndex groups the stored entries of m by row, columns ascending.
// Complexity: O(nnz log nnz).
func (m *Sparse) rowIndex() map[int][]Entry {
	rows := make(map[int][]Entry)
	for _, k := range m.sortedKeys() {
		rows[k.row] = append(rows[k.row], Entry{Row: k.row, Col: k.col, Value: m.data[k]})
	}

	return rows
}

// mulSparse accumulates a×b touching only stored entries of both.
// For each stored (r,k,v) in a and each stored (k,j,w) in row k of b:
// acc[r,j] += v*w.
// Complexity: O(nnz(b) log nnz(b) + nnz(a)·avg-row-density(b)).
func mulSparse(a, b *Sparse) map[index]wide {
	bRows := b.rowIndex()
	acc := make(map[index]wide)
	for k, av := range a.data {
		if av == 0 {
			continue
		}
		for _, e := range bRows[k.col] {
			dst := index{k.row, e.Col}
			acc[dst] = acc[dst].add(wideMul(av, e.Value))
		}
	}

	return acc
}

// mulNaive accumulates a×b, reading every column of b for each stored
// entry of a. Every visited cell gets an accumulator, zero or not.
// Complexity: O(nnz(a)·cols(b)).
func mulNaive(a, b *Sparse) map[index]wide {
	acc := make(map[index]wide)
	var j int
	for k, av := range a.data {
		for j = 0; j < b.cols; j++ {
			dst := index{k.row, j}
			acc[dst] = acc[dst].add(wideMul(av, b.At(k.col, j)))
		}
	}

	return acc
}

// Scale returns alpha·m as a new matrix. alpha == 0 yields an empty matrix of
// the same shape.
//
// Errors:
//   - ErrNilMatrix, ErrOverflow.
//
// Complexity:
//   - Time O(nnz log nnz), Space O(nnz).
func (m *Sparse) Scale(alpha int64) (*Sparse, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	res := newSparse(m.rows, m.cols, m.opts)
	for _, k := range m.sortedKeys() {
		v, ok := mulChecked(m.data[k], alpha)
		if !ok {
			return nil, overflowAt(opScale, k)
		}
		res.store(k, v)
	}

	return res, nil
}

// Negate returns -m. The only failure is ErrOverflow on math.MinInt64.
func (m *Sparse) Negate() (*Sparse, error) { return m.Scale(-1) }

// Transpose returns mᵀ (cols×rows) as a new matrix.
// Complexity: O(nnz).
func (m *Sparse) Transpose() (*Sparse, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	res := newSparse(m.cols, m.rows, m.opts)
	for k, v := range m.data {
		res.data[index{k.col, k.row}] = v
	}

	return res, nil
}
