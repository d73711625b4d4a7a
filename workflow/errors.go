package workflow

import "errors"

var (
	// ErrDuplicateAgentID is returned when two AgentSpecs share an agent_id.
	ErrDuplicateAgentID = errors.New("workflow: duplicate agent_id")

	// ErrDanglingDependency is returned when an AgentSpec's Inputs names an
	// agent_id absent from the request.
	ErrDanglingDependency = errors.New("workflow: dangling dependency")

	// ErrCycle is returned when the induced graph contains a cycle.
	ErrCycle = errors.New("workflow: cycle detected")

	// ErrEmptyAgentID is returned when an AgentSpec has an empty agent_id.
	ErrEmptyAgentID = errors.New("workflow: empty agent_id")
)
