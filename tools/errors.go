package tools

import (
	"errors"
	"fmt"

	"github.com/tailored-agentic-units/toolagents/core/protocol"
)

// Registry errors. Lookups and registrations wrap them with the tool name.
var (
	ErrNotFound      = errors.New("tool not found")
	ErrAlreadyExists = errors.New("tool already registered")
	ErrEmptyName     = errors.New("tool name is empty")
	ErrNilHandler    = errors.New("tool handler is nil")
)

func validate(tool protocol.Tool, handler Handler) error {
	if tool.Name == "" {
		return ErrEmptyName
	}
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, tool.Name)
	}
	return nil
}
