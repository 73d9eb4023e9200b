package apps

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds apps by name. Thread-safe for concurrent access.
type Registry struct {
	mu   sync.RWMutex
	apps map[string]App
}

// NewRegistry creates a Registry holding the given apps. It panics on a
// duplicate or unnamed app, so it suits fixed app sets built at startup.
// Use Register for apps that arrive at runtime.
func NewRegistry(apps ...App) *Registry {
	r := &Registry{apps: make(map[string]App)}
	for _, a := range apps {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
	return r
}

// Builtin returns a registry holding the EDA and News apps.
func Builtin() *Registry {
	return NewRegistry(EDA(), News())
}

// Register adds an app.
func (r *Registry) Register(a App) error {
	if a.Name == "" {
		return ErrEmptyAppName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[a.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAppExists, a.Name)
	}
	r.apps[a.Name] = a
	return nil
}

// Replace updates an existing app.
func (r *Registry) Replace(a App) error {
	if a.Name == "" {
		return ErrEmptyAppName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[a.Name]; !exists {
		return fmt.Errorf("%w: %s", ErrAppNotFound, a.Name)
	}
	r.apps[a.Name] = a
	return nil
}

// Unregister removes an app.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[name]; !exists {
		return fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}
	delete(r.apps, name)
	return nil
}

// Get returns the app registered under name.
func (r *Registry) Get(name string) (App, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.apps[name]
	if !exists {
		return App{}, fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}
	return a, nil
}

// List returns all apps sorted by name.
func (r *Registry) List() []App {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]App, 0, len(r.apps))
	for _, a := range r.apps {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}
