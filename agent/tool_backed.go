package agent

import (
	"context"
	"fmt"

	"github.com/flowmesh/agentdag/tool"
)

// ToolBackedAgent runs a single named tool.Tool, composing its
// parameters from spec-level config and the engine-provided inputs: for
// source agents (no dependencies), the composed input is initial_input
// with config merged over it; for non-source agents, it is the
// upstream-id-to-output map with config merged over it. In both cases
// config wins on key collision.
type ToolBackedAgent struct {
	toolName string
	config   map[string]any
	tools    *tool.Registry
}

// NewToolBackedAgent builds a ToolBackedAgent that looks up toolName in
// tools at Run time (not at construction time), so registry entries
// added after agent construction are still honored.
func NewToolBackedAgent(toolName string, config map[string]any, tools *tool.Registry) *ToolBackedAgent {
	return &ToolBackedAgent{toolName: toolName, config: config, tools: tools}
}

// Run composes inputs with the agent's config (config wins) and invokes
// the backing tool.
func (a *ToolBackedAgent) Run(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	t, err := a.tools.Get(a.toolName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, a.toolName)
	}

	params := mergeOverride(inputs, a.config)
	return t.Execute(ctx, params)
}

// mergeOverride returns a new map containing base's entries overridden
// by override's entries on key collision. Neither argument is mutated.
func mergeOverride(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
