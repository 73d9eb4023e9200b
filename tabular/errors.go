package tabular

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ParseError.
var (
	ErrEmptyInput  = errors.New("no columns to parse from input")
	ErrBinaryInput = errors.New("input is not UTF-8 text")
	ErrFieldCount  = errors.New("wrong number of fields")
)

// ParseError reports input that cannot be read as a rectangular
// comma-separated table. It is the only error Summarize returns.
type ParseError struct {
	Line int // 1-based source line, 0 when the failure is not tied to a line.
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse csv: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
