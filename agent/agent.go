// Package agent sends conversations with tool definitions to a model
// provider and returns the parsed completion.
package agent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/toolagents/agent/providers"
	"github.com/tailored-agentic-units/toolagents/core/config"
	"github.com/tailored-agentic-units/toolagents/core/protocol"
	"github.com/tailored-agentic-units/toolagents/core/response"
)

// maxErrorBody bounds how much of a failed response is kept in HTTPError.
const maxErrorBody = 4 << 10

// Agent is a model that can answer a conversation or request tool calls.
type Agent interface {
	// ID returns the unique agent identifier.
	ID() string

	// Tools sends messages and the available tools to the model. Each opts
	// map is merged over the configured model options.
	Tools(ctx context.Context, messages []protocol.Message, tools []protocol.Tool, opts ...map[string]any) (*response.ToolsResponse, error)
}

type httpAgent struct {
	id       string
	provider providers.Provider
	model    string
	options  map[string]any
	client   *http.Client
}

// New creates an Agent from configuration.
func New(cfg *config.AgentConfig) (Agent, error) {
	if cfg.Model == nil || cfg.Model.Name == "" {
		return nil, ErrMissingModel
	}

	provider, err := providers.FromConfig(cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	client := &http.Client{}
	if cfg.Provider.Timeout > 0 {
		client.Timeout = cfg.Provider.Timeout
	}

	return &httpAgent{
		id:       uuid.Must(uuid.NewV7()).String(),
		provider: provider,
		model:    cfg.Model.Name,
		options:  maps.Clone(cfg.Model.Options),
		client:   client,
	}, nil
}

func (a *httpAgent) ID() string {
	return a.id
}

func (a *httpAgent) Tools(ctx context.Context, messages []protocol.Message, tools []protocol.Tool, opts ...map[string]any) (*response.ToolsResponse, error) {
	options := maps.Clone(a.options)
	if options == nil {
		options = make(map[string]any)
	}
	for _, o := range opts {
		maps.Copy(options, o)
	}

	body, err := a.provider.Marshal(&providers.ToolsData{
		Model:    a.model,
		Messages: messages,
		Tools:    tools,
		Options:  options,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.provider.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	a.provider.SetHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", a.provider.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return response.ParseTools(data)
}
