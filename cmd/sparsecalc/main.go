// Command sparsecalc loads two sparse matrices from text files and adds,
// subtracts or multiplies them.
//
//	sparsecalc add a.txt b.txt
//	sparsecalc mul a.txt b.txt --verify
//	sparsecalc a.txt b.txt          # interactive menu
//	sparsecalc check a.txt b.txt
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/sparsecalc/internal/config"
	"github.com/katalvlaran/sparsecalc/internal/logging"
	"github.com/katalvlaran/sparsecalc/matrix"
)

// app carries the state shared by all commands.
type app struct {
	// Global flags
	configPath    string
	verbose       bool
	strict        bool
	naiveMul      bool
	keepZeros     bool
	noBoundsCheck bool
	verify        bool

	cfg    *config.Config
	logger *zap.Logger // preset in tests; built from cfg otherwise

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	choose func() (string, error) // reads the interactive menu choice
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	a := &app{in: in, out: out, errOut: errOut}
	a.choose = a.readChoice

	return a
}

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).Execute(); err != nil {
		a.renderError(err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sparsecalc [LEFT RIGHT]",
		Short: "Sparse integer matrix calculator",
		Long: `sparsecalc reads matrices stored as

  rows=<int>
  cols=<int>
  (<row>, <col>, <value>)
  ...

and prints the sum, difference or product in the same format.

Run with two files (or none, to use inputs.left/inputs.right from the
config file) to pick the operation from an interactive menu.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 file arguments, received %d", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			left, right := a.cfg.Inputs.Left, a.cfg.Inputs.Right
			if len(args) == 2 {
				left, right = args[0], args[1]
			}
			return a.runInteractive(left, right)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultPath, "path to YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&a.strict, "strict", false, `require exact "(r, c, v)" entry spacing`)
	pf.BoolVar(&a.naiveMul, "naive-mul", false, "use the dense-inner-loop multiplication kernel")
	pf.BoolVar(&a.keepZeros, "keep-zeros", false, "store explicit zero entries")
	pf.BoolVar(&a.noBoundsCheck, "no-bounds-check", false, "accept entries outside the declared shape")
	pf.BoolVar(&a.verify, "verify", false, "cross-check the result against gonum dense arithmetic")

	for _, op := range matrix.Ops {
		root.AddCommand(newOpCmd(a, op))
	}
	root.AddCommand(newCheckCmd(a))

	return root
}

// setup loads config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Parse.Strict = a.strict
	}
	if flags.Changed("naive-mul") && a.naiveMul {
		cfg.Arithmetic.Multiply = config.MultiplyNaive
	}
	if flags.Changed("keep-zeros") {
		cfg.Arithmetic.KeepZeros = a.keepZeros
	}
	if flags.Changed("no-bounds-check") {
		cfg.Parse.BoundsCheck = !a.noBoundsCheck
	}
	if flags.Changed("verify") {
		cfg.Arithmetic.Verify = a.verify
	}
	a.cfg = cfg

	if a.logger == nil {
		if a.logger, err = logging.New(cfg.Logging, a.verbose); err != nil {
			return err
		}
	}
	a.logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.Bool("strict", cfg.Parse.Strict),
		zap.Bool("bounds_check", cfg.Parse.BoundsCheck),
		zap.String("multiply", cfg.Arithmetic.Multiply),
		zap.Bool("keep_zeros", cfg.Arithmetic.KeepZeros),
	)

	return nil
}
