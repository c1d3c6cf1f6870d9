// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Read and write the line-oriented text encoding of a Sparse matrix:
//
//     rows=<int>
//     cols=<int>
//     (<row>, <col>, <value>)
//     ...
//
// Contract:
//   - The whole input is materialized before parsing; any violation aborts
//     the load and no partial matrix is returned.
//   - Duplicate coordinates: last write wins, values never accumulate.
//   - Encode writes headers plus one line per stored non-zero entry in
//     row-major order, so Parse(Encode(m)) is logically equal to m.

package matrix

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header keys and entry punctuation.
const (
	headerRows     = "rows"
	headerCols     = "cols"
	headerSep      = "="
	entryOpen      = "("
	entryClose     = ")"
	entrySep       = ","
	entrySepStrict = ", "
	entryFields    = 3
)

// Parse decodes text into a new Sparse matrix.
// Implementation:
//   - Stage 1: split into lines; a single trailing newline is allowed.
//   - Stage 2: parse the rows and cols headers; allocate the matrix.
//   - Stage 3: parse each remaining line as one (row, col, value) entry.
//
// Errors:
//   - *ParseError matching ErrMalformedInput for grammar violations
//     (missing header, non-integer header, malformed or blank entry line).
//   - *ParseError matching ErrBadShape for a negative rows/cols header.
//   - *ParseError matching ErrOutOfRange for an entry outside the declared
//     shape, unless WithoutBoundsCheck is given.
//
// Complexity:
//   - Time O(len(text)), Space O(nnz).
func Parse(text string, opts ...Option) (*Sparse, error) {
	o := gatherOptions(opts...)
	lines := splitLines(text)

	if len(lines) == 0 {
		return nil, &ParseError{Reason: "missing rows header", Err: ErrMalformedInput}
	}
	rows, err := parseHeader(1, lines[0], headerRows)
	if err != nil {
		return nil, err
	}
	if len(lines) == 1 {
		return nil, &ParseError{Reason: "missing cols header", Err: ErrMalformedInput}
	}
	cols, err := parseHeader(2, lines[1], headerCols)
	if err != nil {
		return nil, err
	}

	m := newSparse(rows, cols, o)
	var e Entry
	for i, line := range lines[2:] {
		lineNo := i + 3
		if e, err = parseEntry(lineNo, line, o.strictFormat); err != nil {
			return nil, err
		}
		if o.boundsCheck && !m.inBounds(e.Row, e.Col) {
			return nil, &ParseError{
				Line:   lineNo,
				Text:   strings.TrimSpace(line),
				Reason: fmt.Sprintf("entry outside %dx%d", rows, cols),
				Err:    ErrOutOfRange,
			}
		}
		m.store(index{e.Row, e.Col}, e.Value)
	}

	return m, nil
}

// Decode reads r to EOF and parses the result with Parse.
func Decode(r io.Reader, opts ...Option) (*Sparse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return Parse(string(data), opts...)
}

// ParseFile loads and parses the file at path.
// Every error, including parse errors, is prefixed with the path so that
// callers juggling several inputs can tell which one failed.
func ParseFile(path string, opts ...Option) (*Sparse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m, err := Parse(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// splitLines splits on '\n', dropping the empty piece after a final newline.
// Carriage returns are removed later by TrimSpace.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// parseHeader parses "<key>=<int>" where key must equal want (case-insensitive).
func parseHeader(lineNo int, line, want string) (int, error) {
	text := strings.TrimSpace(line)
	key, val, ok := strings.Cut(text, headerSep)
	if !ok {
		return 0, &ParseError{Line: lineNo, Text: text, Reason: want + " header must be key=value", Err: ErrMalformedInput}
	}
	if !strings.EqualFold(strings.TrimSpace(key), want) {
		return 0, &ParseError{Line: lineNo, Text: text, Reason: "expected " + want + " header", Err: ErrMalformedInput}
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, &ParseError{Line: lineNo, Text: text, Reason: want + " value is not an integer", Err: ErrMalformedInput}
	}
	if n < 0 {
		return 0, &ParseError{Line: lineNo, Text: text, Reason: "negative " + want, Err: ErrBadShape}
	}

	return n, nil
}

// parseEntry parses "(<row>, <col>, <value>)".
// strict requires the exact ", " separator and no other inner whitespace.
func parseEntry(lineNo int, line string, strict bool) (Entry, error) {
	text := strings.TrimSpace(line)
	fail := func(reason string) (Entry, error) {
		return Entry{}, &ParseError{Line: lineNo, Text: text, Reason: reason, Err: ErrMalformedInput}
	}
	if text == "" {
		return fail("blank line")
	}
	if len(text) < 2 || !strings.HasPrefix(text, entryOpen) || !strings.HasSuffix(text, entryClose) {
		return fail("entry must be wrapped in parentheses")
	}
	inner := text[1 : len(text)-1]

	var fields []string
	if strict {
		fields = strings.Split(inner, entrySepStrict)
	} else {
		fields = strings.Split(inner, entrySep)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
	}
	if len(fields) != entryFields {
		return fail(fmt.Sprintf("expected %d fields, got %d", entryFields, len(fields)))
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return fail("row is not an integer")
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return fail("col is not an integer")
	}
	val, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return fail("value is not an integer")
	}

	return Entry{Row: row, Col: col, Value: val}, nil
}

// Encode writes m in the text encoding accepted by Parse.
// Stored zeros (WithKeepZeros) are omitted.
// Complexity: O(nnz log nnz).
func (m *Sparse) Encode(w io.Writer) error {
	if m == nil {
		return fmt.Errorf("Encode: %w", ErrNilMatrix)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%s%d\n%s%s%d\n", headerRows, headerSep, m.rows, headerCols, headerSep, m.cols)
	for _, k := range m.sortedKeys() {
		v := m.data[k]
		if v == 0 {
			continue
		}
		fmt.Fprintf(bw, "(%d, %d, %d)\n", k.row, k.col, v)
	}

	return bw.Flush()
}

// MarshalText implements encoding.TextMarshaler.
func (m *Sparse) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// String implements fmt.Stringer using the text encoding.
func (m *Sparse) String() string {
	if m == nil {
		return "<nil>"
	}
	b, _ := m.MarshalText()

	return string(b)
}
