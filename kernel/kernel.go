// Package kernel implements the single-agent runtime loop that composes
// agent, tools and session into the observe/think/act/repeat cycle.
//
// The kernel initializes from configuration via New. Functional options
// supply subsystems directly; anything not supplied is created from config.
//
//	k, err := kernel.New(&cfg)
//	result, err := k.Run(ctx, "Perform EDA on this CSV data: ...")
package kernel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tailored-agentic-units/toolagents/agent"
	"github.com/tailored-agentic-units/toolagents/core/protocol"
	"github.com/tailored-agentic-units/toolagents/observability"
	"github.com/tailored-agentic-units/toolagents/session"
	"github.com/tailored-agentic-units/toolagents/tools"
)

// Result holds the outcome of a kernel Run invocation.
type Result struct {
	Response   string           // Final text response from the agent.
	Iterations int              // Number of loop cycles completed.
	ToolCalls  []ToolCallRecord // Log of all tool invocations.
	SessionID  string           // Session the run was recorded in.
}

// ToolCallRecord is one tool invocation made during a run.
type ToolCallRecord struct {
	protocol.ToolCall
	Iteration int    // Loop cycle in which the call occurred.
	Result    string // Tool execution output.
	IsError   bool   // Whether execution returned an error.
}

// ToolExecutor abstracts tool listing and execution for testability.
// *tools.Registry satisfies it.
type ToolExecutor interface {
	List() []protocol.Tool
	Execute(ctx context.Context, name string, args json.RawMessage) (tools.Result, error)
}

// Option configures a Kernel. Subsystems set by options are used as given
// and are not created from config.
type Option func(*Kernel)

// WithAgent supplies the agent.
func WithAgent(a agent.Agent) Option {
	return func(k *Kernel) { k.agent = a }
}

// WithRegistry supplies the agent registry.
func WithRegistry(r *agent.Registry) Option {
	return func(k *Kernel) { k.registry = r }
}

// WithSession supplies the session.
func WithSession(s session.Session) Option {
	return func(k *Kernel) { k.session = s }
}

// WithToolExecutor supplies the tools offered to the agent.
func WithToolExecutor(e ToolExecutor) Option {
	return func(k *Kernel) { k.tools = e }
}

// WithObserver replaces the default slog observer.
func WithObserver(o observability.Observer) Option {
	return func(k *Kernel) { k.observer = o }
}

// Kernel is the single-agent runtime that executes the agentic loop.
type Kernel struct {
	agent         agent.Agent
	registry      *agent.Registry
	session       session.Session
	tools         ToolExecutor
	observer      observability.Observer
	maxIterations int
	systemPrompt  string
}

// New creates a Kernel. Options are applied first; subsystems they leave
// unset are initialized from their config sections. cfg.Tools selects a
// subset of the default tool registry; empty offers every registered tool.
func New(cfg *Config, opts ...Option) (*Kernel, error) {
	k := &Kernel{
		maxIterations: cfg.MaxIterations,
	}

	for _, opt := range opts {
		opt(k)
	}

	if k.registry == nil {
		reg, err := agent.NewRegistryFrom(cfg.Agents)
		if err != nil {
			return nil, fmt.Errorf("failed to register agents: %w", err)
		}
		k.registry = reg
	}

	agentCfg := k.registry.Layer(cfg.Agent)
	k.systemPrompt = joinPrompt(agentCfg.Instruction, cfg.SystemPrompt)

	if k.agent == nil {
		a, err := agent.New(&agentCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create agent: %w", err)
		}
		k.agent = a
	}

	if k.session == nil {
		sesh, err := session.New(&cfg.Session)
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		k.session = sesh
	}

	if k.tools == nil {
		k.tools = tools.Default()
		if len(cfg.Tools) > 0 {
			sub, err := tools.Default().Subset(cfg.Tools...)
			if err != nil {
				return nil, fmt.Errorf("failed to select tools: %w", err)
			}
			k.tools = sub
		}
	}

	if k.observer == nil {
		k.observer = observability.NewSlogObserver(nil)
	}

	return k, nil
}

// Registry returns the kernel's agent registry.
func (k *Kernel) Registry() *agent.Registry {
	return k.registry
}

// Session returns the session the kernel records the conversation in.
func (k *Kernel) Session() session.Session {
	return k.session
}

// Run appends prompt to the session and loops: ask the agent, execute any
// tool calls it requests, feed their results back, until the agent answers
// without tool calls. A zero iteration budget loops until the context ends.
// On ErrMaxIterations the partial Result is returned with the error.
func (k *Kernel) Run(ctx context.Context, prompt string) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	history := k.session.Len()
	k.session.AddMessage(
		protocol.NewMessage(protocol.RoleUser, prompt),
	)

	result := &Result{SessionID: k.session.ID()}
	available := k.tools.List()

	k.emit(ctx, EventRunStart, observability.LevelInfo, map[string]any{
		"session":        k.session.ID(),
		"history":        history,
		"prompt_length":  len(prompt),
		"max_iterations": k.maxIterations,
		"tools":          len(available),
	})

	for iteration := 0; k.maxIterations == 0 || iteration < k.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		k.emit(ctx, EventIterationStart, observability.LevelVerbose, map[string]any{
			"iteration": iteration + 1,
		})

		resp, err := k.agent.Tools(ctx, k.buildMessages(), available)
		if err != nil {
			k.emit(ctx, EventError, observability.LevelError, map[string]any{
				"iteration": iteration + 1,
				"error":     err.Error(),
			})
			return result, fmt.Errorf("agent call failed: %w", err)
		}

		if len(resp.Choices) == 0 {
			return result, ErrEmptyResponse
		}

		choice := resp.Choices[0]

		if len(choice.Message.ToolCalls) == 0 {
			k.session.AddMessage(protocol.NewMessage(protocol.RoleAssistant, choice.Message.Content))
			result.Response = choice.Message.Content
			result.Iterations = iteration + 1

			k.emit(ctx, EventResponse, observability.LevelInfo, map[string]any{
				"iteration":       iteration + 1,
				"response_length": len(result.Response),
			})
			k.emit(ctx, EventRunComplete, observability.LevelVerbose, map[string]any{
				"iterations": result.Iterations,
				"tool_calls": len(result.ToolCalls),
			})

			return result, nil
		}

		k.session.AddMessage(protocol.Message{
			Role:      protocol.RoleAssistant,
			Content:   choice.Message.Content,
			ToolCalls: choice.Message.ToolCalls,
		})

		for _, tc := range choice.Message.ToolCalls {
			record := k.execute(ctx, tc, iteration+1)
			result.ToolCalls = append(result.ToolCalls, record)
		}

		result.Iterations = iteration + 1
	}

	k.emit(ctx, EventError, observability.LevelWarning, map[string]any{
		"error":      ErrMaxIterations.Error(),
		"iterations": k.maxIterations,
	})

	return result, ErrMaxIterations
}

// execute runs one tool call and records its output in the session. Tool
// failures are reported back to the agent as tool messages.
func (k *Kernel) execute(ctx context.Context, tc protocol.ToolCall, iteration int) ToolCallRecord {
	k.emit(ctx, EventToolCall, observability.LevelVerbose, map[string]any{
		"iteration": iteration,
		"name":      tc.Name,
	})

	record := ToolCallRecord{
		ToolCall:  tc,
		Iteration: iteration,
	}

	args := json.RawMessage(tc.Arguments)
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	toolResult, err := k.tools.Execute(ctx, tc.Name, args)
	if err != nil {
		record.Result = fmt.Sprintf("error: %s", err)
		record.IsError = true
	} else {
		record.Result = toolResult.Content
		record.IsError = toolResult.IsError
	}

	k.session.AddMessage(protocol.ToolResult(tc.ID, record.Result))

	k.emit(ctx, EventToolComplete, observability.LevelVerbose, map[string]any{
		"iteration": iteration,
		"name":      tc.Name,
		"error":     record.IsError,
	})

	return record
}

func (k *Kernel) buildMessages() []protocol.Message {
	sessionMsgs := k.session.Messages()

	if k.systemPrompt == "" {
		return sessionMsgs
	}

	messages := make([]protocol.Message, 0, len(sessionMsgs)+1)
	messages = append(messages, protocol.NewMessage(protocol.RoleSystem, k.systemPrompt))
	messages = append(messages, sessionMsgs...)
	return messages
}

func (k *Kernel) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	k.observer.OnEvent(ctx, observability.NewEvent(typ, level, eventSource, data))
}

func joinPrompt(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
