package agent

import "errors"

var (
	// ErrNotRegistered is returned by Create when agent_type has no factory.
	ErrNotRegistered = errors.New("agent: type not registered")

	// ErrAlreadyRegistered is returned by Register when agent_type already
	// has a factory and overwrite was not requested.
	ErrAlreadyRegistered = errors.New("agent: type already registered")

	// ErrToolNotFound is returned by ToolBackedAgent when its configured
	// tool name has no entry in the tool.Registry it was built with.
	ErrToolNotFound = errors.New("agent: backing tool not found")
)
