package dataset

import (
	"context"
	"errors"
)

// SampleName is the file EnsureSample seeds.
const SampleName = "sample.csv"

// SampleCSV is a small mixed-type table with one missing value.
const SampleCSV = `col1,col2,col3
a,1,10.5
b,2,20.3
a,1,15.0
c,3,22.1
b,2,18.7
a,,11.2
`

// EnsureSample writes SampleCSV as SampleName unless the store already has
// it. It reports whether the file was created.
func EnsureSample(ctx context.Context, s Store) (bool, error) {
	_, err := s.Load(ctx, SampleName)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	if err := s.Save(ctx, Entry{Name: SampleName, Data: []byte(SampleCSV)}); err != nil {
		return false, err
	}
	return true, nil
}
