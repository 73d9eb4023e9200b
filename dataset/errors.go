package dataset

import "errors"

// Sentinel errors for store operations.
var (
	ErrNotFound   = errors.New("dataset not found")
	ErrBadPattern = errors.New("invalid pattern")
	ErrBadName    = errors.New("invalid dataset name")
	ErrLoadFailed = errors.New("load failed")
	ErrSaveFailed = errors.New("save failed")
)
