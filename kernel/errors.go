package kernel

import "errors"

// Errors returned by Run.
var (
	// ErrEmptyPrompt rejects a blank prompt before the session is touched.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrMaxIterations ends a run whose iteration budget ran out while the
	// agent was still calling tools. The partial Result is returned with it.
	ErrMaxIterations = errors.New("max iterations reached")

	// ErrEmptyResponse reports an agent answer without choices.
	ErrEmptyResponse = errors.New("agent returned empty response")
)
