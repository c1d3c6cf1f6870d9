// Package config loads the sparsecalc driver configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sparsecalc/matrix"
)

// Multiplication strategies accepted in arithmetic.multiply.
const (
	MultiplySparse = "sparse"
	MultiplyNaive  = "naive"
)

// Environment overrides.
const (
	EnvLogLevel = "SPARSECALC_LOG_LEVEL"
	EnvMultiply = "SPARSECALC_MULTIPLY"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "sparsecalc.yaml"

// Config holds all sparsecalc configuration.
type Config struct {
	// Default operand files for interactive mode
	Inputs InputsConfig `yaml:"inputs"`

	// Text decoding policy
	Parse ParseConfig `yaml:"parse"`

	// Arithmetic policy
	Arithmetic ArithmeticConfig `yaml:"arithmetic"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// InputsConfig names the operand files used when none are passed on the command line.
type InputsConfig struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// ParseConfig configures matrix.Parse.
type ParseConfig struct {
	Strict      bool `yaml:"strict"`       // require exact "(r, c, v)" spacing
	BoundsCheck bool `yaml:"bounds_check"` // reject entries outside rows×cols
}

// ArithmeticConfig configures the arithmetic kernels.
type ArithmeticConfig struct {
	Multiply  string `yaml:"multiply"`   // sparse, naive
	KeepZeros bool   `yaml:"keep_zeros"` // store explicit zeros
	Verify    bool   `yaml:"verify"`     // cross-check results with gonum
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Inputs: InputsConfig{
			Left:  "sample_inputs/matrix1.txt",
			Right: "sample_inputs/matrix2.txt",
		},
		Parse: ParseConfig{
			Strict:      matrix.DefaultStrictFormat,
			BoundsCheck: matrix.DefaultBoundsCheck,
		},
		Arithmetic: ArithmeticConfig{
			Multiply:  MultiplySparse,
			KeepZeros: matrix.DefaultKeepZeros,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if strategy := os.Getenv(EnvMultiply); strategy != "" {
		c.Arithmetic.Multiply = strategy
	}
}

// ValidLogLevels lists the accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	c.Arithmetic.Multiply = strings.ToLower(strings.TrimSpace(c.Arithmetic.Multiply))
	switch c.Arithmetic.Multiply {
	case MultiplySparse, MultiplyNaive:
	default:
		return fmt.Errorf("invalid arithmetic.multiply: %q (valid: %s, %s)", c.Arithmetic.Multiply, MultiplySparse, MultiplyNaive)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if strings.EqualFold(c.Logging.Level, l) {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging.level: %q (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format: %q (valid: json, console)", c.Logging.Format)
	}

	return nil
}

// MatrixOptions converts the parse and arithmetic sections into matrix options.
func (c *Config) MatrixOptions() []matrix.Option {
	opts := make([]matrix.Option, 0, 4)

	if c.Parse.Strict {
		opts = append(opts, matrix.WithStrictFormat())
	} else {
		opts = append(opts, matrix.WithRelaxedFormat())
	}
	if c.Parse.BoundsCheck {
		opts = append(opts, matrix.WithBoundsCheck())
	} else {
		opts = append(opts, matrix.WithoutBoundsCheck())
	}
	if c.Arithmetic.KeepZeros {
		opts = append(opts, matrix.WithKeepZeros())
	} else {
		opts = append(opts, matrix.WithPruneZeros())
	}
	if c.Arithmetic.Multiply == MultiplyNaive {
		opts = append(opts, matrix.WithNaiveMultiply())
	} else {
		opts = append(opts, matrix.WithSparseMultiply())
	}

	return opts
}
