// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Public facade: builders and the operation selector used by drivers that
//     pick an arithmetic operation at run time.

package matrix

import (
	"fmt"
	"strings"
)

// ZeroSparse returns a rows×cols matrix with no stored entries.
func ZeroSparse(rows, cols int, opts ...Option) (*Sparse, error) {
	return NewSparse(rows, cols, opts...)
}

// IdentitySparse returns the n×n identity: 1 at (i,i) for every i < n.
// Complexity: O(n).
func IdentitySparse(n int, opts ...Option) (*Sparse, error) {
	m, err := NewSparse(n, n, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.store(index{i, i}, 1)
	}

	return m, nil
}

// SparseFromEntries builds a rows×cols matrix from entries, applied in order
// (last write wins). Bounds follow the resolved policy.
func SparseFromEntries(rows, cols int, entries []Entry, opts ...Option) (*Sparse, error) {
	m, err := NewSparse(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err = m.Set(e.Row, e.Col, e.Value); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Op selects one of the binary arithmetic operations.
type Op int

// Supported operations. The numeric values match the interactive menu.
const (
	OpAdd Op = iota + 1
	OpSubtract
	OpMultiply
)

// Ops lists the supported operations in menu order.
var Ops = []Op{OpAdd, OpSubtract, OpMultiply}

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "Addition"
	case OpSubtract:
		return "Subtraction"
	case OpMultiply:
		return "Multiplication"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// opAliases maps accepted selector spellings to operations.
var opAliases = map[string]Op{
	"1": OpAdd, "add": OpAdd, "addition": OpAdd, "+": OpAdd,
	"2": OpSubtract, "sub": OpSubtract, "subtract": OpSubtract, "subtraction": OpSubtract, "-": OpSubtract,
	"3": OpMultiply, "mul": OpMultiply, "multiply": OpMultiply, "multiplication": OpMultiply, "*": OpMultiply, "x": OpMultiply,
}

// ParseOp resolves a selector: a menu number ("1".."3"), a name ("add",
// "subtract", "multiply" and their short forms) or a symbol ("+", "-", "*").
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseOp(s string) (Op, error) {
	op, ok := opAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("ParseOp(%q): %w", s, ErrUnknownOp)
	}

	return op, nil
}

// Apply runs op on a and b and returns the fresh result.
// This is the whole contract a driver needs: two matrices and a selector in,
// a matrix or a typed error out.
func Apply(op Op, a, b *Sparse) (*Sparse, error) {
	switch op {
	case OpAdd:
		return a.Add(b)
	case OpSubtract:
		return a.Subtract(b)
	case OpMultiply:
		return a.Multiply(b)
	default:
		return nil, fmt.Errorf("Apply(%v): %w", op, ErrUnknownOp)
	}
}
