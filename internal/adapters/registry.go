// Package adapters holds the registry of tracker integrations. Each
// integration exposes its repository as a core.Adapter; callers resolve
// adapters by name so new trackers can be wired in without touching the
// engines.
package adapters

import (
	"sync"

	"github.com/alekspetrov/clawban/internal/core"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]core.Adapter{}
)

// Register adds a constructed adapter to the global registry.
func Register(a core.Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[a.Name()] = a
}

// Get returns a registered adapter by name, or nil if not found.
func Get(name string) core.Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

// All returns a copy of all registered adapters.
func All() map[string]core.Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make(map[string]core.Adapter, len(registry))
	for k, v := range registry {
		out[k] = v
	}
	return out
}

// Reset clears the registry. Used for testing only.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = map[string]core.Adapter{}
}
