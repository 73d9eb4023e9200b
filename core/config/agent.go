// Package config holds the agent configuration shared by the agent and
// kernel packages. Every section supports DefaultX + Merge so a loaded file
// only needs to name what differs from the defaults.
package config

import (
	"maps"
	"os"
	"strings"
	"time"
)

const (
	defaultProvider = "openai"
	defaultModel    = "gpt-4o"
	defaultTimeout  = 2 * time.Minute
)

// knownProviders maps a provider name to its default endpoint and API key
// environment variable.
var knownProviders = map[string]struct{ baseURL, keyEnv string }{
	"openai":     {"https://api.openai.com/v1", "OPENAI_API_KEY"},
	"openrouter": {"https://openrouter.ai/api/v1", "OPENROUTER_API_KEY"},
	"ollama":     {"http://localhost:11434/v1", ""},
}

// ProviderConfig selects the model endpoint and its credentials.
type ProviderConfig struct {
	Name      string        `json:"name" mapstructure:"name"`
	BaseURL   string        `json:"base_url,omitempty" mapstructure:"base_url"`
	APIKey    string        `json:"api_key,omitempty" mapstructure:"api_key"`
	APIKeyEnv string        `json:"api_key_env,omitempty" mapstructure:"api_key_env"`
	Timeout   time.Duration `json:"timeout,omitempty" mapstructure:"timeout"`
}

// ModelConfig names the model and carries request options such as
// temperature that are passed through to the provider.
type ModelConfig struct {
	Name    string         `json:"name" mapstructure:"name"`
	Options map[string]any `json:"options,omitempty" mapstructure:"options"`
}

// AgentConfig describes one agent: who it is, what it is told, and which
// model answers for it.
type AgentConfig struct {
	Name        string          `json:"name" mapstructure:"name"`
	Description string          `json:"description,omitempty" mapstructure:"description"`
	Instruction string          `json:"instruction,omitempty" mapstructure:"instruction"`
	Provider    *ProviderConfig `json:"provider,omitempty" mapstructure:"provider"`
	Model       *ModelConfig    `json:"model,omitempty" mapstructure:"model"`
}

// DefaultAgentConfig returns an agent backed by OpenAI gpt-4o.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Provider: DefaultProviderConfig(defaultProvider),
		Model:    &ModelConfig{Name: defaultModel},
	}
}

// DefaultProviderConfig returns the default settings for a named provider.
// Unknown names get a config with only the name and timeout set.
func DefaultProviderConfig(name string) *ProviderConfig {
	cfg := &ProviderConfig{Name: name, Timeout: defaultTimeout}
	if known, ok := knownProviders[name]; ok {
		cfg.BaseURL = known.baseURL
		cfg.APIKeyEnv = known.keyEnv
	}
	return cfg
}

// ParseModel splits a "provider/model" reference such as "openai/gpt-4o".
// A reference without a slash has an empty provider.
func ParseModel(ref string) (provider, model string) {
	provider, model, found := strings.Cut(ref, "/")
	if !found {
		return "", ref
	}
	return provider, model
}

// UseModel points the config at a "provider/model" reference. Switching to
// a different provider resets the endpoint and key settings to that
// provider's defaults.
func (c *AgentConfig) UseModel(ref string) {
	provider, model := ParseModel(ref)
	if provider != "" && (c.Provider == nil || c.Provider.Name != provider) {
		c.Provider = DefaultProviderConfig(provider)
	}
	if c.Model == nil {
		c.Model = &ModelConfig{}
	}
	c.Model.Name = model
}

// Clone returns a copy of c that shares no pointers or maps with it, so
// merging into the copy leaves c unchanged.
func (c AgentConfig) Clone() AgentConfig {
	if c.Provider != nil {
		p := *c.Provider
		c.Provider = &p
	}
	if c.Model != nil {
		m := *c.Model
		m.Options = maps.Clone(m.Options)
		c.Model = &m
	}
	return c
}

// Merge applies non-zero values from source into c.
func (c *AgentConfig) Merge(source *AgentConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}
	if source.Description != "" {
		c.Description = source.Description
	}
	if source.Instruction != "" {
		c.Instruction = source.Instruction
	}

	if source.Provider != nil {
		if c.Provider == nil || (source.Provider.Name != "" && source.Provider.Name != c.Provider.Name) {
			c.Provider = DefaultProviderConfig(source.Provider.Name)
		}
		c.Provider.Merge(source.Provider)
	}

	if source.Model != nil {
		if c.Model == nil {
			c.Model = &ModelConfig{}
		}
		c.Model.Merge(source.Model)
	}
}

// Merge applies non-zero values from source into c.
func (c *ProviderConfig) Merge(source *ProviderConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.APIKeyEnv != "" {
		c.APIKeyEnv = source.APIKeyEnv
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
}

// ResolveAPIKey returns the configured key, falling back to the APIKeyEnv
// environment variable.
func (c *ProviderConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	return ""
}

// Merge applies non-zero values from source into c. Options are merged key
// by key.
func (c *ModelConfig) Merge(source *ModelConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}
	if len(source.Options) > 0 {
		if c.Options == nil {
			c.Options = make(map[string]any, len(source.Options))
		}
		for k, v := range source.Options {
			c.Options[k] = v
		}
	}
}
