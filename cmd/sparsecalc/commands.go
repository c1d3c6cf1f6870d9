package main

import (
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sparsecalc/matrix"
)

// errVerification is returned by --verify when the sparse and dense results differ.
var errVerification = errors.New("result differs from gonum dense arithmetic")

// opCommands names the subcommand of each operation.
var opCommands = map[matrix.Op]struct {
	use     string
	aliases []string
}{
	matrix.OpAdd:      {"add", []string{"sum"}},
	matrix.OpSubtract: {"sub", []string{"subtract", "diff"}},
	matrix.OpMultiply: {"mul", []string{"multiply", "product"}},
}

// newOpCmd returns the subcommand running op on two files.
func newOpCmd(a *app, op matrix.Op) *cobra.Command {
	def := opCommands[op]

	return &cobra.Command{
		Use:     def.use + " LEFT RIGHT",
		Aliases: def.aliases,
		Short:   fmt.Sprintf("Print the %s of two matrices", op),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOp(op, args[0], args[1])
		},
	}
}

// newCheckCmd returns the subcommand validating matrix files.
func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Parse matrix files and report their shape",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				m, err := a.load(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(a.out, "%s: %dx%d, %d stored entries\n", path, m.Rows(), m.Cols(), m.Nnz())
			}
			return errors.Join(errs...)
		},
	}
}

// load parses the file at path with the configured policy.
func (a *app) load(path string) (*matrix.Sparse, error) {
	start := time.Now()
	m, err := matrix.ParseFile(path, a.cfg.MatrixOptions()...)
	if err != nil {
		a.logger.Debug("parse failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	a.logger.Debug("matrix loaded",
		zap.String("path", path),
		zap.Int("rows", m.Rows()),
		zap.Int("cols", m.Cols()),
		zap.Int("nnz", m.Nnz()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return m, nil
}

// runOp loads both operands and computes op.
func (a *app) runOp(op matrix.Op, leftPath, rightPath string) error {
	left, err := a.load(leftPath)
	if err != nil {
		return err
	}
	right, err := a.load(rightPath)
	if err != nil {
		return err
	}

	return a.compute(op, left, right)
}

// compute applies op, optionally verifies, and prints the result.
func (a *app) compute(op matrix.Op, left, right *matrix.Sparse) error {
	start := time.Now()
	res, err := matrix.Apply(op, left, right)
	if err != nil {
		a.logger.Info("operation failed", zap.Stringer("op", op), zap.Error(err))
		return err
	}
	a.logger.Info("operation complete",
		zap.Stringer("op", op),
		zap.Int("rows", res.Rows()),
		zap.Int("cols", res.Cols()),
		zap.Int("nnz", res.Nnz()),
		zap.Duration("elapsed", time.Since(start)),
	)

	if a.cfg.Arithmetic.Verify {
		checked, err := verifyDense(op, left, right, res)
		if err != nil {
			return err
		}
		if checked {
			a.logger.Debug("result verified against gonum", zap.Stringer("op", op))
		} else {
			a.logger.Debug("verification skipped, gonum cannot check this result exactly",
				zap.Stringer("op", op),
				zap.Uint64("left_max_abs", left.MaxAbs()),
				zap.Uint64("right_max_abs", right.MaxAbs()),
			)
		}
	}

	return res.Encode(a.out)
}

// float64Exact bounds integers that float64 represents exactly (2^53).
const float64Exact = 1 << 53

// denseExact reports whether gonum's float64 arithmetic computes op on left
// and right without rounding: every input, partial sum and result stays
// within ±2^53.
func denseExact(op matrix.Op, left, right *matrix.Sparse) bool {
	la, ra := left.MaxAbs(), right.MaxAbs()
	switch op {
	case matrix.OpAdd, matrix.OpSubtract:
		return la <= float64Exact/2 && ra <= float64Exact/2
	case matrix.OpMultiply:
		hi, p := bits.Mul64(la, ra)
		if hi != 0 {
			return false
		}
		hi, p = bits.Mul64(p, uint64(left.Cols()))
		return hi == 0 && p <= float64Exact
	default:
		return false
	}
}

// verifyDense recomputes op with gonum and compares it with res.
// It reports false without comparing when gonum cannot be exact: empty
// shapes, which gonum does not allocate, and values beyond denseExact.
func verifyDense(op matrix.Op, left, right, res *matrix.Sparse) (bool, error) {
	switch op {
	case matrix.OpAdd, matrix.OpSubtract, matrix.OpMultiply:
	default:
		return false, fmt.Errorf("verify %v: %w", op, matrix.ErrUnknownOp)
	}
	if left.Rows() == 0 || left.Cols() == 0 || right.Rows() == 0 || right.Cols() == 0 {
		return false, nil
	}
	if !denseExact(op, left, right) {
		return false, nil
	}
	dl, err := left.ToDense()
	if err != nil {
		return false, err
	}
	dr, err := right.ToDense()
	if err != nil {
		return false, err
	}

	var want mat.Dense
	switch op {
	case matrix.OpAdd:
		want.Add(dl, dr)
	case matrix.OpSubtract:
		want.Sub(dl, dr)
	case matrix.OpMultiply:
		want.Mul(dl, dr)
	}

	expected, err := matrix.SparseFromDense(&want)
	if err != nil {
		return false, fmt.Errorf("verify %v: %w", op, err)
	}
	if !expected.Equal(res) {
		return false, fmt.Errorf("verify %v: %w", op, errVerification)
	}

	return true, nil
}
