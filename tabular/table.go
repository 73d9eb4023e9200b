// Package tabular parses comma-separated text into a table and produces the
// fixed set of descriptive summaries an agent needs for exploratory analysis:
// head, describe, null counts and top value counts.
//
//	report, err := tabular.Summarize(csvText)
//	var perr *tabular.ParseError
//	if errors.As(err, &perr) { ... }
//
// Everything in this package is a pure function of its input and safe for
// concurrent use.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Kind is the inferred type of a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// naTokens are the cell values read as missing, in addition to the empty string.
var naTokens = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// IsMissing reports whether a raw cell value counts as a missing value.
func IsMissing(value string) bool {
	return value == "" || naTokens[value]
}

// Column is a named, typed column of a Table.
type Column struct {
	Name    string
	Kind    Kind
	values  []string
	missing []bool
	numbers []float64 // populated for numeric columns; NaN where missing
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	return len(c.values)
}

// Value returns the raw text of cell i and whether it is present.
func (c *Column) Value(i int) (string, bool) {
	return c.values[i], !c.missing[i]
}

// Missing returns the number of missing cells.
func (c *Column) Missing() int {
	n := 0
	for _, m := range c.missing {
		if m {
			n++
		}
	}
	return n
}

// Numbers returns the present values of a numeric column, in row order.
// It returns nil for categorical columns.
func (c *Column) Numbers() []float64 {
	if c.Kind != KindNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.numbers))
	for i, x := range c.numbers {
		if !c.missing[i] {
			out = append(out, x)
		}
	}
	return out
}

// Table is an ordered sequence of rows over named columns. Column order
// matches the header of the source text.
type Table struct {
	columns []*Column
	rows    int
}

// Columns returns the column names in header order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return t.rows
}

// Record returns row i as raw cell text in column order.
func (t *Table) Record(i int) []string {
	rec := make([]string, len(t.columns))
	for j, c := range t.columns {
		rec[j] = c.values[i]
	}
	return rec
}

// Option adjusts how Parse types the columns of a table.
type Option func(*parseOptions)

type parseOptions struct {
	categorical map[string]bool
}

// AsCategory forces the named columns to be categorical regardless of their
// content. Names that do not match a column are ignored.
func AsCategory(names ...string) Option {
	return func(o *parseOptions) {
		for _, n := range names {
			o.categorical[n] = true
		}
	}
}

// Parse reads comma-separated text with a header row into a Table. Any
// failure is returned as a *ParseError.
func Parse(raw string, opts ...Option) (*Table, error) {
	o := parseOptions{categorical: make(map[string]bool)}
	for _, opt := range opts {
		opt(&o)
	}

	text, err := decode(raw)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Err: ErrEmptyInput}
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1

	header, err := readRecord(r)
	if err != nil {
		return nil, wrapReadError(err)
	}

	names := headerNames(header)
	columns := make([]*Column, len(names))
	for i, name := range names {
		columns[i] = &Column{Name: name}
	}

	rows := 0
	for {
		rec, err := readRecord(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapReadError(err)
		}
		if len(rec) != len(columns) {
			line, _ := r.FieldPos(0)
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("%w: expected %d fields, saw %d", ErrFieldCount, len(columns), len(rec)),
			}
		}
		for j, v := range rec {
			columns[j].values = append(columns[j].values, v)
			columns[j].missing = append(columns[j].missing, IsMissing(v))
		}
		rows++
	}

	for _, c := range columns {
		classify(c, o.categorical[c.Name])
	}

	return &Table{columns: columns, rows: rows}, nil
}

// readRecord returns the next record, skipping lines that hold only
// whitespace. encoding/csv drops empty lines but not those.
func readRecord(r *csv.Reader) ([]string, error) {
	for {
		rec, err := r.Read()
		if err != nil {
			return nil, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		return rec, nil
	}
}

// decode strips a byte-order mark (transcoding UTF-16 input that carries one)
// and rejects content that is not text.
func decode(raw string) (string, error) {
	text, _, err := transform.String(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBinaryInput, err)
	}
	if !utf8.ValidString(text) || strings.ContainsRune(text, 0) {
		return "", ErrBinaryInput
	}
	return text, nil
}

func wrapReadError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	if errors.Is(err, io.EOF) {
		return &ParseError{Err: ErrEmptyInput}
	}
	return &ParseError{Err: err}
}

// headerNames names blank header cells "Unnamed: i" and suffixes repeated
// names with ".1", ".2", ... so every column name is unique.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[name] {
			for n := 1; ; n++ {
				candidate := fmt.Sprintf("%s.%d", name, n)
				if !seen[candidate] {
					name = candidate
					break
				}
			}
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

// classify decides the column kind from the full column content: numeric
// when every present cell is a number (including an all-missing column),
// categorical otherwise.
func classify(c *Column, forceCategorical bool) {
	if forceCategorical {
		c.Kind = KindCategorical
		return
	}

	numbers := make([]float64, len(c.values))
	for i, v := range c.values {
		if c.missing[i] {
			numbers[i] = math.NaN()
			continue
		}
		x, ok := parseNumber(v)
		if !ok {
			c.Kind = KindCategorical
			return
		}
		numbers[i] = x
	}

	c.Kind = KindNumeric
	c.numbers = numbers
}

func parseNumber(v string) (float64, bool) {
	s := strings.TrimSpace(v)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) {
		return 0, false
	}
	return x, true
}
