// Package sparsecalc is a calculator for large, mostly-zero integer matrices.
//
// Only non-zero entries are stored, so a 100000×100000 matrix with a few
// thousand entries costs a few thousand map slots, not ten billion cells.
//
// What lives where:
//
//	matrix/            Sparse type, text codec, Add/Subtract/Multiply, gonum bridge
//	internal/config/   YAML configuration and environment overrides
//	internal/logging/  zap logger construction
//	cmd/sparsecalc/    the command-line calculator (subcommands + interactive menu)
//	examples/          runnable scenarios
//
// Text format, one item per line:
//
//	rows=3
//	cols=3
//	(0, 0, 5)
//	(1, 2, -3)
//
// Quick start:
//
//	go run ./cmd/sparsecalc mul sample_inputs/matrix1.txt sample_inputs/matrix2.txt
//
// or, to pick the operation from a menu:
//
//	go run ./cmd/sparsecalc sample_inputs/matrix1.txt sample_inputs/matrix2.txt
package sparsecalc
