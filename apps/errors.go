package apps

import "errors"

var (
	ErrAppNotFound  = errors.New("app not found")
	ErrAppExists    = errors.New("app already exists")
	ErrEmptyAppName = errors.New("app name is empty")
)
