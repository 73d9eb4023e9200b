// Package mock provides a scripted Agent for tests.
package mock

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/tailored-agentic-units/toolagents/core/protocol"
	"github.com/tailored-agentic-units/toolagents/core/response"
)

// ErrExhausted is returned once every scripted step has been consumed.
var ErrExhausted = errors.New("mock agent: no more responses configured")

type step struct {
	resp *response.ToolsResponse
	err  error
}

// MockAgent replays scripted responses in order and records the messages it
// was called with.
type MockAgent struct {
	id string

	mu    sync.Mutex
	steps []step
	next  int
	calls [][]protocol.Message
	tools [][]protocol.Tool
}

// Option configures a MockAgent.
type Option func(*MockAgent)

// WithID sets the agent ID.
func WithID(id string) Option {
	return func(m *MockAgent) { m.id = id }
}

// WithResponses appends successful responses to the script.
func WithResponses(responses ...*response.ToolsResponse) Option {
	return func(m *MockAgent) {
		for _, r := range responses {
			m.steps = append(m.steps, step{resp: r})
		}
	}
}

// WithError appends a failing step to the script.
func WithError(err error) Option {
	return func(m *MockAgent) {
		m.steps = append(m.steps, step{err: err})
	}
}

// NewMockAgent creates a MockAgent with ID "mock-agent" and an empty script.
func NewMockAgent(opts ...Option) *MockAgent {
	m := &MockAgent{id: "mock-agent"}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockAgent) ID() string {
	return m.id
}

func (m *MockAgent) Tools(ctx context.Context, messages []protocol.Message, tools []protocol.Tool, opts ...map[string]any) (*response.ToolsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, slices.Clone(messages))
	m.tools = append(m.tools, slices.Clone(tools))

	if m.next >= len(m.steps) {
		return nil, ErrExhausted
	}
	s := m.steps[m.next]
	m.next++
	return s.resp, s.err
}

// Calls returns the messages passed to each Tools call.
func (m *MockAgent) Calls() [][]protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// OfferedTools returns the tools passed to each Tools call.
func (m *MockAgent) OfferedTools() [][]protocol.Tool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.tools)
}

// FinalResponse builds a response whose first choice carries text content.
func FinalResponse(content string) *response.ToolsResponse {
	return &response.ToolsResponse{
		Model: "mock",
		Choices: []response.Choice{{
			Message:      protocol.NewMessage(protocol.RoleAssistant, content),
			FinishReason: "stop",
		}},
	}
}

// ToolCallResponse builds a response whose first choice requests tool calls.
func ToolCallResponse(calls ...protocol.ToolCall) *response.ToolsResponse {
	return &response.ToolsResponse{
		Model: "mock",
		Choices: []response.Choice{{
			Message: protocol.Message{
				Role:      protocol.RoleAssistant,
				ToolCalls: calls,
			},
			FinishReason: "tool_calls",
		}},
	}
}
