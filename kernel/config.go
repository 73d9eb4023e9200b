package kernel

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tailored-agentic-units/toolagents/core/config"
	"github.com/tailored-agentic-units/toolagents/session"
)

const (
	defaultMaxIterations = 10

	// EnvPrefix prefixes environment overrides, e.g. TOOLAGENTS_MAX_ITERATIONS
	// or TOOLAGENTS_AGENT_MODEL_NAME.
	EnvPrefix = "TOOLAGENTS"
)

// envKeys are the settings that can be overridden from the environment.
var envKeys = []string{
	"max_iterations",
	"system_prompt",
	"agent.name",
	"agent.instruction",
	"agent.provider.name",
	"agent.provider.base_url",
	"agent.provider.api_key",
	"agent.provider.api_key_env",
	"agent.provider.timeout",
	"agent.model.name",
	"session.app_name",
	"session.user_id",
	"session.session_id",
}

// Config holds initialization parameters for all kernel subsystems.
// Each subsystem section delegates to that subsystem's config-driven constructor.
type Config struct {
	Agent         config.AgentConfig            `json:"agent" mapstructure:"agent"`
	Agents        map[string]config.AgentConfig `json:"agents,omitempty" mapstructure:"agents"`
	Session       session.Config                `json:"session" mapstructure:"session"`
	Tools         []string                      `json:"tools,omitempty" mapstructure:"tools"`
	MaxIterations int                           `json:"max_iterations,omitempty" mapstructure:"max_iterations"`
	SystemPrompt  string                        `json:"system_prompt,omitempty" mapstructure:"system_prompt"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Agent:         config.DefaultAgentConfig(),
		Session:       session.DefaultConfig(),
		MaxIterations: defaultMaxIterations,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Agent.Merge(&source.Agent)
	c.Session.Merge(&source.Session)

	if len(source.Tools) > 0 {
		c.Tools = source.Tools
	}
	if source.MaxIterations > 0 {
		c.MaxIterations = source.MaxIterations
	}
	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}

	if len(source.Agents) > 0 {
		c.Agents = source.Agents
	}
}

// NewViper returns a viper instance that reads TOOLAGENTS_* environment
// overrides for the kernel settings.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// Decode merges the settings held by v over the defaults.
func Decode(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	var loaded Config
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// LoadConfig reads a JSON, YAML or TOML config file, applies environment
// overrides, merges the result with defaults and returns it.
func LoadConfig(filename string) (*Config, error) {
	v := NewViper()
	v.SetConfigFile(filename)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Decode(v)
}
