package agent

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/flowmesh/agentdag/types"
)

// Registry maps agent_type strings to Factory functions. It is
// concurrency-safe and carries no built-in agent types of its own — the
// four reference agents (data_fetcher, data_processor, calculator,
// chart_generator) are registered by callers outside this module.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *zap.Logger
}

// NewRegistry creates an empty Registry. logger may be nil, in which case
// a no-op logger is used.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger,
	}
}

// Register adds a factory under agentType. It returns ErrAlreadyRegistered
// if agentType already has a factory and overwrite is false.
func (r *Registry) Register(agentType string, factory Factory, overwrite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[agentType]; exists && !overwrite {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, agentType)
	}
	r.factories[agentType] = factory

	r.logger.Info("agent type registered", zap.String("agent_type", agentType))
	return nil
}

// Unregister removes the factory for agentType, if present.
func (r *Registry) Unregister(agentType string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.factories, agentType)
	r.logger.Info("agent type unregistered", zap.String("agent_type", agentType))
}

// Create instantiates an Agent for spec.AgentType, or returns
// ErrNotRegistered if no factory exists.
func (r *Registry) Create(spec types.AgentSpec) (Agent, error) {
	r.mu.RLock()
	factory, exists := r.factories[spec.AgentType]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, spec.AgentType)
	}

	a, err := factory(spec)
	if err != nil {
		return nil, fmt.Errorf("agent: create %q (type %q): %w", spec.AgentID, spec.AgentType, err)
	}

	r.logger.Info("agent created",
		zap.String("agent_id", spec.AgentID),
		zap.String("agent_type", spec.AgentType),
	)
	return a, nil
}

// IsRegistered reports whether agentType has a factory.
func (r *Registry) IsRegistered(agentType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[agentType]
	return exists
}

// ListTypes returns all registered agent_type strings, in no particular order.
func (r *Registry) ListTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agentTypes := make([]string, 0, len(r.factories))
	for t := range r.factories {
		agentTypes = append(agentTypes, t)
	}
	return agentTypes
}
