package agent

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/tailored-agentic-units/toolagents/core/config"
)

// AgentInfo summarizes one profile.
type AgentInfo struct {
	Name     string
	Provider string
	Model    string
}

// Registry holds agent profiles keyed by agent name. A profile is a partial
// AgentConfig layered over a base config, so a profile may name only the
// model or only the instruction an agent should use.
type Registry struct {
	mu       sync.Mutex
	profiles map[string]config.AgentConfig
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]config.AgentConfig)}
}

// NewRegistryFrom registers every entry of profiles.
func NewRegistryFrom(profiles map[string]config.AgentConfig) (*Registry, error) {
	r := NewRegistry()
	for _, name := range slices.Sorted(maps.Keys(profiles)) {
		if err := r.Register(name, profiles[name]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register stores a profile. It fails with ErrAgentExists when name is taken.
func (r *Registry) Register(name string, profile config.AgentConfig) error {
	if name == "" {
		return ErrEmptyAgentName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[name]; ok {
		return fmt.Errorf("%w: %s", ErrAgentExists, name)
	}
	r.profiles[name] = profile.Clone()
	return nil
}

// Replace swaps the profile stored under name.
func (r *Registry) Replace(name string, profile config.AgentConfig) error {
	if name == "" {
		return ErrEmptyAgentName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}
	r.profiles[name] = profile.Clone()
	return nil
}

// Unregister removes a profile.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}
	delete(r.profiles, name)
	return nil
}

// Profile returns a copy of the profile stored under name.
func (r *Registry) Profile(name string) (config.AgentConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[name]
	if !ok {
		return config.AgentConfig{}, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}
	return p.Clone(), nil
}

// Layer returns base with the profile registered under base.Name applied.
// base itself is not modified.
func (r *Registry) Layer(base config.AgentConfig) config.AgentConfig {
	cfg := base.Clone()

	r.mu.Lock()
	p, ok := r.profiles[base.Name]
	r.mu.Unlock()

	if ok {
		cfg.Merge(&p)
		cfg.Name = base.Name
	}
	return cfg
}

// List describes the profiles in name order.
func (r *Registry) List() []AgentInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]AgentInfo, 0, len(r.profiles))
	for _, name := range slices.Sorted(maps.Keys(r.profiles)) {
		p := r.profiles[name]
		info := AgentInfo{Name: name}
		if p.Provider != nil {
			info.Provider = p.Provider.Name
		}
		if p.Model != nil {
			info.Model = p.Model.Name
		}
		infos = append(infos, info)
	}
	return infos
}
