package providers

import "errors"

// Sentinel errors for provider construction.
var (
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrUnknownProvider = errors.New("unknown provider")
)
