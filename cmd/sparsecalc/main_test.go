package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/katalvlaran/sparsecalc/internal/config"
	"github.com/katalvlaran/sparsecalc/matrix"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	identity2 = "rows=2\ncols=2\n(0, 0, 1)\n(1, 1, 1)\n"
	upper2    = "rows=2\ncols=2\n(0, 1, 2)\n"
	row12     = "rows=1\ncols=2\n(0, 0, 2)\n(0, 1, 3)\n"
	col21     = "rows=2\ncols=1\n(0, 0, 4)\n(1, 0, 5)\n"
)

// cliResult captures one CLI invocation.
type cliResult struct {
	out, errOut string
	err         error
}

// runCLI executes the command tree with a nop logger and an absent config
// file unless args name one.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvMultiply, "")

	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out, &errOut)
	a.logger = zap.NewNop()

	cmd := newRootCmd(a)
	full := args
	if !hasFlag(args, "--config") {
		full = append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...)
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	if err != nil {
		a.renderError(err)
	}

	return cliResult{out: out.String(), errOut: errOut.String(), err: err}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// writeFile writes body under t.TempDir() and returns its path.
func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestOpCommands(t *testing.T) {
	id := writeFile(t, "id.txt", identity2)
	up := writeFile(t, "up.txt", upper2)
	row := writeFile(t, "row.txt", row12)
	col := writeFile(t, "col.txt", col21)

	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{"add", []string{"add", id, up}, "rows=2\ncols=2\n(0, 0, 1)\n(0, 1, 2)\n(1, 1, 1)\n"},
		{"sum alias", []string{"sum", up, id}, "rows=2\ncols=2\n(0, 0, 1)\n(0, 1, 2)\n(1, 1, 1)\n"},
		{"sub", []string{"sub", id, up}, "rows=2\ncols=2\n(0, 0, 1)\n(0, 1, -2)\n(1, 1, 1)\n"},
		{"sub reversed", []string{"subtract", up, id}, "rows=2\ncols=2\n(0, 0, -1)\n(0, 1, 2)\n(1, 1, -1)\n"},
		{"mul", []string{"mul", row, col}, "rows=1\ncols=1\n(0, 0, 23)\n"},
		{"mul naive verified", []string{"mul", "--naive-mul", "--verify", row, col}, "rows=1\ncols=1\n(0, 0, 23)\n"},
		{"mul outer", []string{"multiply", col, row}, "rows=2\ncols=2\n(0, 0, 8)\n(0, 1, 12)\n(1, 0, 10)\n(1, 1, 15)\n"},
		{"add verified", []string{"add", "--verify", id, up}, "rows=2\ncols=2\n(0, 0, 1)\n(0, 1, 2)\n(1, 1, 1)\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, "", tc.args...)
			require.NoError(t, res.err)
			assert.Equal(t, tc.want, res.out)
			assert.Empty(t, res.errOut)
		})
	}
}

func TestOpCommands_Errors(t *testing.T) {
	id := writeFile(t, "id.txt", identity2)
	row := writeFile(t, "row.txt", row12)
	bad := writeFile(t, "bad.txt", "rows=2\n(0,0,5)\n")

	res := runCLI(t, "", "mul", id, row)
	require.ErrorIs(t, res.err, matrix.ErrDimensionMismatch)
	assert.Empty(t, res.out)
	assert.Contains(t, res.errOut, "Error:")
	assert.Contains(t, res.errOut, "incompatible for multiplication")

	res = runCLI(t, "", "add", id, row)
	require.ErrorIs(t, res.err, matrix.ErrDimensionMismatch)
	assert.Contains(t, res.errOut, "shapes differ")

	res = runCLI(t, "", "add", id, bad)
	require.ErrorIs(t, res.err, matrix.ErrMalformedInput)
	assert.Contains(t, res.errOut, bad, "failing file is named")

	res = runCLI(t, "", "add", id)
	require.Error(t, res.err)

	res = runCLI(t, "", "add", id, filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, res.err, os.ErrNotExist)
}

func TestPolicyFlags(t *testing.T) {
	tight := writeFile(t, "tight.txt", "rows=2\ncols=2\n(0,0,1)\n")
	id := writeFile(t, "id.txt", identity2)
	outside := writeFile(t, "outside.txt", "rows=2\ncols=2\n(3, 3, 1)\n")

	res := runCLI(t, "", "add", tight, id)
	require.NoError(t, res.err)
	assert.Equal(t, "rows=2\ncols=2\n(0, 0, 2)\n(1, 1, 1)\n", res.out)

	res = runCLI(t, "", "add", "--strict", tight, id)
	require.ErrorIs(t, res.err, matrix.ErrMalformedInput)

	res = runCLI(t, "", "add", outside, id)
	require.ErrorIs(t, res.err, matrix.ErrOutOfRange)

	res = runCLI(t, "", "add", "--no-bounds-check", outside, id)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "(3, 3, 1)")
}

func TestInteractive(t *testing.T) {
	row := writeFile(t, "row.txt", row12)
	col := writeFile(t, "col.txt", col21)

	res := runCLI(t, "3\n", row, col)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Select operation:")
	assert.Contains(t, res.out, "1. Addition\n2. Subtraction\n3. Multiplication\n")
	assert.True(t, strings.HasSuffix(res.out, "rows=1\ncols=1\n(0, 0, 23)\n"), res.out)

	res = runCLI(t, "multiply", row, col)
	require.NoError(t, res.err, "a final line without newline is accepted")

	res = runCLI(t, "9\n", row, col)
	require.ErrorIs(t, res.err, matrix.ErrUnknownOp)
	assert.Contains(t, res.errOut, `invalid choice "9"`)

	res = runCLI(t, "", row, col)
	require.Error(t, res.err, "no choice available")

	res = runCLI(t, "1\n", row)
	require.Error(t, res.err, "exactly zero or two files")
}

func TestInteractive_ConfigInputs(t *testing.T) {
	id := writeFile(t, "id.txt", identity2)
	up := writeFile(t, "up.txt", upper2)

	cfg := config.DefaultConfig()
	cfg.Inputs.Left = id
	cfg.Inputs.Right = up
	cfgPath := filepath.Join(t.TempDir(), "sparsecalc.yaml")
	require.NoError(t, cfg.Save(cfgPath))

	res := runCLI(t, "2\n", "--config", cfgPath)
	require.NoError(t, res.err)
	assert.True(t, strings.HasSuffix(res.out, "rows=2\ncols=2\n(0, 0, 1)\n(0, 1, -2)\n(1, 1, 1)\n"), res.out)
}

func TestCheckCommand(t *testing.T) {
	id := writeFile(t, "id.txt", identity2)
	bad := writeFile(t, "bad.txt", "rows=x\ncols=2\n")

	res := runCLI(t, "", "check", id)
	require.NoError(t, res.err)
	assert.Equal(t, id+": 2x2, 2 stored entries\n", res.out)

	res = runCLI(t, "", "check", id, bad)
	require.ErrorIs(t, res.err, matrix.ErrMalformedInput)
	assert.Contains(t, res.out, id+": 2x2")
	assert.Contains(t, res.errOut, bad)
}

func TestVerifyDense(t *testing.T) {
	a, err := matrix.Parse(identity2)
	require.NoError(t, err)
	b, err := matrix.Parse(upper2)
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	checked, err := verifyDense(matrix.OpAdd, a, b, sum)
	require.NoError(t, err)
	assert.True(t, checked)

	_, err = verifyDense(matrix.OpSubtract, a, b, sum)
	require.ErrorIs(t, err, errVerification)
	_, err = verifyDense(matrix.Op(7), a, b, sum)
	require.ErrorIs(t, err, matrix.ErrUnknownOp)

	empty, err := matrix.NewSparse(0, 2)
	require.NoError(t, err)
	checked, err = verifyDense(matrix.OpAdd, empty, empty, empty)
	require.NoError(t, err)
	assert.False(t, checked, "empty shapes are skipped")
}

func TestVerifyDense_BeyondFloat64Precision(t *testing.T) {
	// 2^53 + 1 has no exact float64 representation
	big, err := matrix.Parse("rows=1\ncols=1\n(0, 0, 9007199254740993)\n")
	require.NoError(t, err)
	one, err := matrix.Parse("rows=1\ncols=1\n(0, 0, 1)\n")
	require.NoError(t, err)

	for _, op := range matrix.Ops {
		res, err := matrix.Apply(op, big, one)
		require.NoError(t, err)
		checked, err := verifyDense(op, big, one, res)
		require.NoErrorf(t, err, "%v", op)
		assert.Falsef(t, checked, "%v", op)
	}

	// small values, but a dot product reaching past 2^53
	row, err := matrix.Parse("rows=1\ncols=2\n(0, 0, 4294967296)\n(0, 1, 4294967296)\n")
	require.NoError(t, err)
	col, err := matrix.Parse("rows=2\ncols=1\n(0, 0, 4194304)\n(1, 0, 4194304)\n")
	require.NoError(t, err)
	res, err := row.Multiply(col)
	require.NoError(t, err)
	checked, err := verifyDense(matrix.OpMultiply, row, col, res)
	require.NoError(t, err)
	assert.False(t, checked)

	// at the bound the comparison still runs
	edge, err := matrix.Parse("rows=1\ncols=1\n(0, 0, 4503599627370496)\n")
	require.NoError(t, err)
	res, err = edge.Add(edge)
	require.NoError(t, err)
	checked, err = verifyDense(matrix.OpAdd, edge, edge, res)
	require.NoError(t, err)
	assert.True(t, checked)
}

func TestVerifyFlag_LargeValues(t *testing.T) {
	big := writeFile(t, "big.txt", "rows=1\ncols=1\n(0, 0, 9007199254740993)\n")
	one := writeFile(t, "one.txt", "rows=1\ncols=1\n(0, 0, 1)\n")

	res := runCLI(t, "", "add", "--verify", big, one)
	require.NoError(t, res.err)
	assert.Equal(t, "rows=1\ncols=1\n(0, 0, 9007199254740994)\n", res.out)

	res = runCLI(t, "", "mul", "--verify", big, one)
	require.NoError(t, res.err)
	assert.Equal(t, "rows=1\ncols=1\n(0, 0, 9007199254740993)\n", res.out)
}

func TestBadConfig(t *testing.T) {
	path := writeFile(t, "bad.yaml", "arithmetic:\n  multiply: strassen\n")
	id := writeFile(t, "id.txt", identity2)

	res := runCLI(t, "", "--config", path, "add", id, id)
	require.Error(t, res.err)
	assert.Contains(t, res.errOut, "arithmetic.multiply")
}
