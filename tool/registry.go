package tool

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Registry is a concurrency-safe map of tool name to Tool. The zero value
// is not usable; construct with NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	order  []string
	logger *zap.Logger
}

// NewRegistry creates an empty Registry. logger may be nil, in which case
// a no-op logger is used.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register adds t under t.Name(). It returns ErrAlreadyRegistered if a
// tool with that name exists and overwrite is false; overwrite=true
// replaces the existing entry in place without disturbing List order.
func (r *Registry) Register(t Tool, overwrite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool: cannot register tool with empty name")
	}

	if _, exists := r.tools[name]; exists && !overwrite {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t

	r.logger.Info("tool registered", zap.String("name", name))
	return nil
}

// Unregister removes the tool with the given name, if present.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Info("tool unregistered", zap.String("name", name))
	return nil
}

// Get returns the tool registered under name, or ErrNotFound.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return t, nil
}

// Has reports whether a tool is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.tools[name]
	return exists
}

// List returns {name, description} pairs in registration order, so
// repeated calls and tests observe a stable ordering.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		infos = append(infos, Info{Name: name, Description: t.Description()})
	}
	return infos
}
