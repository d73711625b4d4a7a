package agent

import (
	"context"

	"github.com/flowmesh/agentdag/types"
)

// Agent is the contract every workflow node executes against. Run
// receives the composed input map (merged per the workflow's input
// composition rule) and returns the output map the engine records on
// success, or an error the engine's retry loop interprets.
type Agent interface {
	// Run executes one attempt. It must respect ctx cancellation and
	// deadline: the engine wraps each attempt in its own timeout context.
	Run(ctx context.Context, inputs map[string]any) (map[string]any, error)
}

// Factory creates an Agent instance for the given spec. Factories are
// registered under an agent_type string and invoked once per AgentSpec
// per workflow execution, just before the engine runs that agent.
type Factory func(spec types.AgentSpec) (Agent, error)
