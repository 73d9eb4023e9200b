package tabular

import (
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TopN bounds the value counts reported per categorical column.
const TopN = 5

// Stat is a summary statistic. Values that are undefined for the column
// (std of a single value, any statistic of an empty column) are NaN and
// encode as JSON null; infinities encode as the strings "inf" and "-inf".
type Stat float64

// IsDefined reports whether the statistic has a value.
func (s Stat) IsDefined() bool {
	return !math.IsNaN(float64(s))
}

func (s Stat) MarshalJSON() ([]byte, error) {
	x := float64(s)
	switch {
	case math.IsNaN(x):
		return []byte("null"), nil
	case math.IsInf(x, 1):
		return []byte(`"inf"`), nil
	case math.IsInf(x, -1):
		return []byte(`"-inf"`), nil
	}
	return strconv.AppendFloat(nil, x, 'g', -1, 64), nil
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*s = Stat(math.NaN())
		return nil
	case `"inf"`:
		*s = Stat(math.Inf(1))
		return nil
	case `"-inf"`:
		*s = Stat(math.Inf(-1))
		return nil
	}
	x, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Stat(x)
	return nil
}

// NumericSummary holds the describe statistics of a numeric column.
type NumericSummary struct {
	Mean Stat `json:"mean"`
	Std  Stat `json:"std"`
	Min  Stat `json:"min"`
	Q25  Stat `json:"25%"`
	Q50  Stat `json:"50%"`
	Q75  Stat `json:"75%"`
	Max  Stat `json:"max"`
}

// CategoricalSummary holds the describe statistics of a categorical column.
type CategoricalSummary struct {
	Unique int    `json:"unique"`
	Top    string `json:"top,omitempty"`
	Freq   int    `json:"freq"`
}

// ColumnSummary is the describe entry for one column. Exactly one of
// Numeric and Categorical is set, matching Kind.
type ColumnSummary struct {
	Name        string              `json:"name"`
	Kind        Kind                `json:"kind"`
	Count       int                 `json:"count"`
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Categorical *CategoricalSummary `json:"categorical,omitempty"`
}

// ValueCount is one observed value of a categorical column and how often it
// occurs.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Describe computes the describe entry for the column.
func (c *Column) Describe() ColumnSummary {
	summary := ColumnSummary{
		Name:  c.Name,
		Kind:  c.Kind,
		Count: c.Len() - c.Missing(),
	}

	if c.Kind == KindNumeric {
		summary.Numeric = describeNumbers(c.Numbers())
		return summary
	}

	counts := c.counts()
	cat := &CategoricalSummary{Unique: len(counts)}
	if len(counts) > 0 {
		cat.Top = counts[0].Value
		cat.Freq = counts[0].Count
	}
	summary.Categorical = cat
	return summary
}

// ValueCounts returns the TopN most frequent present values, by count
// descending with ties in order of first appearance. It returns nil for
// numeric columns.
func (c *Column) ValueCounts() []ValueCount {
	if c.Kind != KindCategorical {
		return nil
	}
	counts := c.counts()
	if len(counts) > TopN {
		counts = counts[:TopN]
	}
	return counts
}

func (c *Column) counts() []ValueCount {
	index := make(map[string]int)
	var counts []ValueCount
	for i, v := range c.values {
		if c.missing[i] {
			continue
		}
		if j, ok := index[v]; ok {
			counts[j].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, ValueCount{Value: v, Count: 1})
	}
	slices.SortStableFunc(counts, func(a, b ValueCount) int {
		return b.Count - a.Count
	})
	return counts
}

func describeNumbers(xs []float64) *NumericSummary {
	nan := Stat(math.NaN())
	summary := &NumericSummary{Mean: nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan}
	if len(xs) == 0 {
		return summary
	}

	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	summary.Mean = Stat(mean)
	if len(sorted) > 1 {
		summary.Std = Stat(std)
	}
	summary.Min = Stat(floats.Min(sorted))
	summary.Max = Stat(floats.Max(sorted))
	summary.Q25 = Stat(quantile(sorted, 0.25))
	summary.Q50 = Stat(quantile(sorted, 0.50))
	summary.Q75 = Stat(quantile(sorted, 0.75))
	return summary
}

// quantile interpolates linearly between order statistics at position
// (n-1)*p of sorted. gonum's LinInterp uses the n*p convention instead.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	frac := h - float64(lo)
	if frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
