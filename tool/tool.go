package tool

import "context"

// Tool is a single named unit of work a ToolBackedAgent can invoke. It
// takes a plain parameter map and returns a plain output map, with no
// JSON-schema or function-calling contract attached — that belongs to
// the LLM-facing tool surface this module does not implement.
type Tool interface {
	// Name is the identifier tools are registered and looked up under.
	Name() string

	// Description is a short human-readable summary used by List.
	Description() string

	// Execute runs the tool with the given parameters. Implementations
	// should respect ctx cancellation for any blocking work.
	Execute(ctx context.Context, params map[string]any) (map[string]any, error)
}

// Info is the {name, description} pair List returns, kept separate from
// Tool itself so callers can enumerate tools without holding a reference
// to the implementations.
type Info struct {
	Name        string
	Description string
}
