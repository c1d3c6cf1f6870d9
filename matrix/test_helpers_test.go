// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for codec and arithmetic tests.
//   • Keep values small so random products never approach int64 limits.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/sparsecalc/matrix"
	"github.com/stretchr/testify/require"
)

// MustParse parses text or fails the test.
func MustParse(t testing.TB, text string, opts ...matrix.Option) *matrix.Sparse {
	t.Helper()
	m, err := matrix.Parse(text, opts...)
	require.NoError(t, err)

	return m
}

// MustSparse builds a rows×cols matrix from entries or fails the test.
func MustSparse(t testing.TB, rows, cols int, entries []matrix.Entry, opts ...matrix.Option) *matrix.Sparse {
	t.Helper()
	m, err := matrix.SparseFromEntries(rows, cols, entries, opts...)
	require.NoError(t, err)

	return m
}

// MustIdentity returns the n×n identity or fails the test.
func MustIdentity(t testing.TB, n int, opts ...matrix.Option) *matrix.Sparse {
	t.Helper()
	m, err := matrix.IdentitySparse(n, opts...)
	require.NoError(t, err)

	return m
}

// RandomSparse fills a rows×cols matrix with about nnz values in [-9, 9]
// drawn from a seeded source. Collisions and zero draws make the final
// count smaller; that is fine for property tests.
func RandomSparse(t testing.TB, rows, cols, nnz int, seed int64, opts ...matrix.Option) *matrix.Sparse {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m, err := matrix.NewSparse(rows, cols, opts...)
	require.NoError(t, err)
	for n := 0; n < nnz; n++ {
		v := int64(rng.Intn(19) - 9)
		require.NoError(t, m.Set(rng.Intn(rows), rng.Intn(cols), v))
	}

	return m
}

// RequireSameElements compares a and b cell by cell over the declared shape.
// Used where a failure should point at the first differing coordinate.
func RequireSameElements(t testing.TB, want, got *matrix.Sparse) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	var i, j int
	for i = 0; i < want.Rows(); i++ {
		for j = 0; j < want.Cols(); j++ {
			require.Equalf(t, want.At(i, j), got.At(i, j), "element [%d,%d]", i, j)
		}
	}
}
