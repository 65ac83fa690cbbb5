// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name>.  cmd/web constructs
// them with their dependencies, registers them here, mounts every component's
// Routes() on the root router, and applies its Migrations() at boot.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.
//
// Mount() is the URL prefix the component's Routes() are attached under;
// prefixes must not collide.  Migrations() may return nil when the component
// owns no tables.  Statements must be idempotent (CREATE TABLE IF NOT
// EXISTS) because they run on every boot.
type Component interface {
	Name() string
	Mount() string
	Routes() chi.Router
	Migrations() []string
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register adds c to the registry, replacing any previous component with the
// same name.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name, so mount order and
// migration order are deterministic across boots.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
