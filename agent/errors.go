package agent

import (
	"errors"
	"fmt"

	"github.com/tailored-agentic-units/toolagents/agent/providers"
)

// Sentinel errors for agent construction and the agent registry.
var (
	ErrMissingAPIKey  = providers.ErrMissingAPIKey
	ErrMissingModel   = errors.New("model is not configured")
	ErrAgentNotFound  = errors.New("agent not found")
	ErrAgentExists    = errors.New("agent already registered")
	ErrEmptyAgentName = errors.New("agent name is empty")
)

// HTTPError is returned when a provider answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}
