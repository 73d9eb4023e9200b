// Package providers adapts OpenAI-compatible chat-completions endpoints.
// A Provider knows where requests go, which headers they need, and how the
// request body is laid out.
package providers

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strings"

	"github.com/tailored-agentic-units/toolagents/core/config"
)

// Provider describes one chat-completions endpoint.
type Provider interface {
	Name() string
	BaseURL() string
	// Endpoint returns the full URL of the chat-completions route.
	Endpoint() string
	SetHeaders(req *http.Request)
	Marshal(data *ToolsData) ([]byte, error)
}

// BaseProvider implements the parts shared by all OpenAI-compatible
// providers. It sends no credentials.
type BaseProvider struct {
	name    string
	baseURL string
}

// NewBaseProvider creates a BaseProvider. Trailing slashes are trimmed from
// baseURL.
func NewBaseProvider(name, baseURL string) *BaseProvider {
	return &BaseProvider{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (p *BaseProvider) Name() string    { return p.name }
func (p *BaseProvider) BaseURL() string { return p.baseURL }

func (p *BaseProvider) Endpoint() string {
	return p.baseURL + "/chat/completions"
}

func (p *BaseProvider) SetHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// Marshal lays out a chat-completions body. Options are written as top-level
// keys and never override model, messages or tools.
func (p *BaseProvider) Marshal(data *ToolsData) ([]byte, error) {
	body := make(map[string]any, len(data.Options)+3)
	maps.Copy(body, data.Options)

	body["model"] = data.Model
	body["messages"] = data.Messages
	if len(data.Tools) > 0 {
		body["tools"] = wireTools(data.Tools)
	}

	out, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tools request: %w", err)
	}
	return out, nil
}

// OpenAI is a provider that authenticates with a bearer token. It also
// serves OpenRouter and other OpenAI-compatible gateways.
type OpenAI struct {
	*BaseProvider
	apiKey string
}

// NewOpenAI creates a bearer-authenticated provider.
func NewOpenAI(name, baseURL, apiKey string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: provider %s", ErrMissingAPIKey, name)
	}
	return &OpenAI{
		BaseProvider: NewBaseProvider(name, baseURL),
		apiKey:       apiKey,
	}, nil
}

func (p *OpenAI) SetHeaders(req *http.Request) {
	p.BaseProvider.SetHeaders(req)
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
}

// NewOllama creates a provider for a local Ollama server. The
// OpenAI-compatible /v1 prefix is appended when baseURL lacks it.
func NewOllama(baseURL string) *BaseProvider {
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL += "/v1"
	}
	return NewBaseProvider("ollama", baseURL)
}

// FromConfig creates the provider named by cfg.
func FromConfig(cfg *config.ProviderConfig) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrUnknownProvider)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultProviderConfig(cfg.Name).BaseURL
	}

	switch cfg.Name {
	case "openai", "openrouter":
		return NewOpenAI(cfg.Name, baseURL, cfg.ResolveAPIKey())
	case "ollama":
		return NewOllama(baseURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Name)
	}
}
