package kernel

import "github.com/tailored-agentic-units/toolagents/observability"

const eventSource = "kernel.Run"

// Events emitted by Run. Every event carries the listed Data keys.
const (
	// session, history, prompt_length, max_iterations, tools
	EventRunStart observability.EventType = "kernel.run.start"
	// iteration
	EventIterationStart observability.EventType = "kernel.iteration.start"
	// iteration, name
	EventToolCall observability.EventType = "kernel.tool.call"
	// iteration, name, error
	EventToolComplete observability.EventType = "kernel.tool.complete"
	// iteration, response_length
	EventResponse observability.EventType = "kernel.response"
	// iterations, tool_calls
	EventRunComplete observability.EventType = "kernel.run.complete"
	// error, plus iteration or iterations
	EventError observability.EventType = "kernel.error"
)
