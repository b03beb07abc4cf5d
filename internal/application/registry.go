package application

import (
	"fmt"

	"nasa-mcp-server/internal/domain"
)

// Registry holds every tool adapter keyed by tool name.
// It is built once at startup and frozen before serving begins, so lookups
// run concurrently without locking. There is no runtime add or remove.
type Registry struct {
	adapters map[string]domain.Adapter
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]domain.Adapter),
	}
}

// Register adds an adapter under its advertised tool name.
// Duplicate names are a startup misconfiguration and fail fast.
func (r *Registry) Register(adapter domain.Adapter) error {
	name := adapter.Definition().Name
	if name == "" {
		return fmt.Errorf("adapter has an empty tool name")
	}
	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("duplicate tool name: %s", name)
	}

	r.adapters[name] = adapter
	r.order = append(r.order, name)
	return nil
}

// MustRegister registers a set of adapters and panics on any duplicate.
// Intended for startup wiring where a duplicate is fatal anyway.
func (r *Registry) MustRegister(adapters ...domain.Adapter) {
	for _, adapter := range adapters {
		if err := r.Register(adapter); err != nil {
			panic(err)
		}
	}
}

// List returns every tool definition in registration order.
func (r *Registry) List() []domain.ToolDefinition {
	definitions := make([]domain.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		definitions = append(definitions, r.adapters[name].Definition())
	}
	return definitions
}

// Resolve returns the adapter registered under the exact, case-sensitive
// name.
func (r *Registry) Resolve(name string) (domain.Adapter, bool) {
	adapter, exists := r.adapters[name]
	return adapter, exists
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}
