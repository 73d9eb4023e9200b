package observability

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownObserver is returned when no observer is registered under a name.
var ErrUnknownObserver = errors.New("unknown observer")

// Named observers selectable from configuration. "slog" writes through
// slog.Default at the time each event arrives, so it follows later
// slog.SetDefault calls.
var (
	registryMu sync.RWMutex
	registry   = map[string]Observer{
		"noop": NoOpObserver{},
		"slog": NewSlogObserver(nil),
	}
)

// GetObserver returns the observer registered under name.
func GetObserver(name string) (Observer, error) {
	registryMu.RLock()
	obs, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownObserver, name, ObserverNames())
	}
	return obs, nil
}

// RegisterObserver stores observer under name, replacing any previous entry.
func RegisterObserver(name string, observer Observer) {
	registryMu.Lock()
	registry[name] = observer
	registryMu.Unlock()
}

// ObserverNames lists the registered names in sorted order.
func ObserverNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

// Resolve looks up each name and returns one observer delivering to all of
// them in the given order. Duplicate names are delivered to once. No names
// resolves to NoOpObserver.
func Resolve(names ...string) (Observer, error) {
	var found []Observer
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		obs, err := GetObserver(name)
		if err != nil {
			return nil, err
		}
		found = append(found, obs)
	}

	switch len(found) {
	case 0:
		return NoOpObserver{}, nil
	case 1:
		return found[0], nil
	}
	return NewMultiObserver(found...), nil
}
