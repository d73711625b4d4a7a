package agent

import "context"

// RunFunc is the closure signature FuncAgent wraps.
type RunFunc func(ctx context.Context, inputs map[string]any) (map[string]any, error)

// FuncAgent adapts a plain Go closure to the Agent interface, for tests
// and for custom agents that don't go through a tool.Registry.
type FuncAgent struct {
	fn RunFunc
}

// NewFuncAgent wraps fn as an Agent.
func NewFuncAgent(fn RunFunc) *FuncAgent {
	return &FuncAgent{fn: fn}
}

// Run delegates to the wrapped closure.
func (a *FuncAgent) Run(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	return a.fn(ctx, inputs)
}
