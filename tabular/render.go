package tabular

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const missingText = "NaN"

// DescribeText renders the describe section as a grid with one column per
// table column and one row per statistic.
func (r *Report) DescribeText() string {
	var hasNumeric, hasCategorical bool
	for _, s := range r.Describe {
		if s.Kind == KindNumeric {
			hasNumeric = true
		} else {
			hasCategorical = true
		}
	}

	labels := []string{"count"}
	if hasCategorical {
		labels = append(labels, "unique", "top", "freq")
	}
	if hasNumeric {
		labels = append(labels, "mean", "std", "min", "25%", "50%", "75%", "max")
	}

	cells := make([][]string, len(labels))
	for i, label := range labels {
		row := make([]string, len(r.Describe))
		for j, s := range r.Describe {
			row[j] = describeCell(s, label)
		}
		cells[i] = row
	}

	return renderGrid(r.Columns, labels, cells)
}

// NullCountsText renders the null counts as one "column count" line per column.
func (r *Report) NullCountsText() string {
	cells := make([][]string, len(r.Columns))
	for i, name := range r.Columns {
		cells[i] = []string{strconv.Itoa(r.NullCounts[name])}
	}
	return renderGrid(nil, r.Columns, cells)
}

// ValueCountsText renders the value counts of a categorical column under a
// line naming the column. It returns "" for columns without value counts.
func (r *Report) ValueCountsText(column string) string {
	counts, ok := r.ValueCounts[column]
	if !ok {
		return ""
	}
	values := make([]string, len(counts))
	cells := make([][]string, len(counts))
	for i, vc := range counts {
		values[i] = vc.Value
		cells[i] = []string{strconv.Itoa(vc.Count)}
	}
	if len(counts) == 0 {
		return column + "\n(no values)"
	}
	return column + "\n" + renderGrid(nil, values, cells)
}

func renderHead(columns []string, rows [][]string) string {
	if len(rows) == 0 {
		return "Empty table\nColumns: [" + strings.Join(columns, ", ") + "]"
	}
	index := make([]string, len(rows))
	cells := make([][]string, len(rows))
	for i, rec := range rows {
		index[i] = strconv.Itoa(i)
		row := make([]string, len(rec))
		for j, v := range rec {
			if IsMissing(v) {
				v = missingText
			}
			row[j] = v
		}
		cells[i] = row
	}
	return renderGrid(columns, index, cells)
}

func describeCell(s ColumnSummary, label string) string {
	if label == "count" {
		return strconv.Itoa(s.Count)
	}
	if c := s.Categorical; c != nil {
		switch label {
		case "unique":
			return strconv.Itoa(c.Unique)
		case "top":
			if c.Unique == 0 {
				return missingText
			}
			return c.Top
		case "freq":
			if c.Unique == 0 {
				return missingText
			}
			return strconv.Itoa(c.Freq)
		}
		return missingText
	}
	if n := s.Numeric; n != nil {
		switch label {
		case "mean":
			return formatStat(n.Mean)
		case "std":
			return formatStat(n.Std)
		case "min":
			return formatStat(n.Min)
		case "25%":
			return formatStat(n.Q25)
		case "50%":
			return formatStat(n.Q50)
		case "75%":
			return formatStat(n.Q75)
		case "max":
			return formatStat(n.Max)
		}
	}
	return missingText
}

func formatStat(s Stat) string {
	x := float64(s)
	switch {
	case math.IsNaN(x):
		return missingText
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// renderGrid lays out cells with a left-aligned index column and
// right-aligned data columns separated by two spaces. A nil header omits the
// header line.
func renderGrid(header, index []string, cells [][]string) string {
	indexWidth := 0
	for _, label := range index {
		indexWidth = max(indexWidth, runewidth.StringWidth(label))
	}

	ncol := len(header)
	for _, row := range cells {
		ncol = max(ncol, len(row))
	}
	widths := make([]int, ncol)
	for j := range widths {
		if j < len(header) {
			widths[j] = runewidth.StringWidth(header[j])
		}
		for _, row := range cells {
			if j < len(row) {
				widths[j] = max(widths[j], runewidth.StringWidth(row[j]))
			}
		}
	}

	var lines []string
	if header != nil {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", indexWidth))
		for j, h := range header {
			b.WriteString("  ")
			b.WriteString(runewidth.FillLeft(h, widths[j]))
		}
		lines = append(lines, b.String())
	}
	for i, row := range cells {
		var b strings.Builder
		label := ""
		if i < len(index) {
			label = index[i]
		}
		b.WriteString(runewidth.FillRight(label, indexWidth))
		for j, v := range row {
			b.WriteString("  ")
			b.WriteString(runewidth.FillLeft(v, widths[j]))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n")
}
