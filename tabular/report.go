package tabular

import "strings"

// HeadRows is the number of leading rows shown in a report.
const HeadRows = 5

// Report is the fixed four-part summary of a table. A Report is built fresh
// by Summarize and is not modified afterwards.
type Report struct {
	Columns     []string                `json:"columns"`
	Rows        int                     `json:"rows"`
	Head        string                  `json:"head"`
	HeadRows    [][]string              `json:"head_rows"`
	Describe    []ColumnSummary         `json:"describe"`
	NullCounts  map[string]int          `json:"null_counts"`
	ValueCounts map[string][]ValueCount `json:"value_counts"`
}

// Summarize parses raw comma-separated text and summarizes it. On failure it
// returns a nil report and a *ParseError.
func Summarize(raw string, opts ...Option) (*Report, error) {
	t, err := Parse(raw, opts...)
	if err != nil {
		return nil, err
	}
	return t.Summarize(), nil
}

// Summarize builds the report for the table.
func (t *Table) Summarize() *Report {
	n := min(t.rows, HeadRows)
	head := make([][]string, n)
	for i := range n {
		head[i] = t.Record(i)
	}

	r := &Report{
		Columns:     t.Columns(),
		Rows:        t.rows,
		HeadRows:    head,
		Describe:    make([]ColumnSummary, 0, len(t.columns)),
		NullCounts:  make(map[string]int, len(t.columns)),
		ValueCounts: make(map[string][]ValueCount),
	}

	for _, c := range t.columns {
		r.Describe = append(r.Describe, c.Describe())
		r.NullCounts[c.Name] = c.Missing()
		if c.Kind == KindCategorical {
			r.ValueCounts[c.Name] = c.ValueCounts()
		}
	}

	r.Head = renderHead(r.Columns, head)
	return r
}

// Summary returns the describe entry for the named column.
func (r *Report) Summary(column string) (ColumnSummary, bool) {
	for _, s := range r.Describe {
		if s.Name == column {
			return s, true
		}
	}
	return ColumnSummary{}, false
}

// CategoricalColumns returns the names of the columns that have value counts,
// in header order.
func (r *Report) CategoricalColumns() []string {
	var names []string
	for _, name := range r.Columns {
		if _, ok := r.ValueCounts[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// String renders all four sections as plain text.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString("head:\n")
	b.WriteString(r.Head)
	b.WriteString("\n\ndescribe:\n")
	b.WriteString(r.DescribeText())
	b.WriteString("\n\nnull_counts:\n")
	b.WriteString(r.NullCountsText())
	b.WriteString("\n\nvalue_counts:")
	for _, name := range r.CategoricalColumns() {
		b.WriteString("\n")
		b.WriteString(r.ValueCountsText(name))
	}
	b.WriteString("\n")
	return b.String()
}
