package engine

import "github.com/flowmesh/agentdag/types"

// Config holds the engine-wide knobs engineconfig loads from YAML plus
// environment overrides. Per-agent spec fields, when present, always
// take precedence over these defaults.
type Config struct {
	// DefaultMaxRetries applies to any AgentSpec that omits max_retries.
	DefaultMaxRetries int
	// DefaultTimeoutSeconds applies to any AgentSpec that omits timeout_seconds.
	DefaultTimeoutSeconds float64
	// MaxConcurrentAgents bounds the total number of agent goroutines the
	// engine runs at once, across all in-flight workflows.
	MaxConcurrentAgents int
	// ExecutionContextRetention is the capacity of the completed-workflow
	// LRU cache.
	ExecutionContextRetention int
	// ContinueOnErrorDefault is used when a WorkflowRequest doesn't set
	// ContinueOnError explicitly. The zero value (false) matches the
	// spec's fail-fast default, so this field exists mainly for
	// engineconfig to override in environments that want the opposite
	// default.
	ContinueOnErrorDefault bool
	// BackoffJitter enables up to 25% random jitter on retry delays.
	BackoffJitter bool
	// MetricsNamespace is the Prometheus namespace metrics are registered under.
	MetricsNamespace string
}

// DefaultConfig returns the engine's out-of-the-box defaults, matching
// the spec's field-level defaults for AgentSpec plus reasonable
// concurrency and retention bounds.
func DefaultConfig() Config {
	return Config{
		DefaultMaxRetries:         types.DefaultMaxRetries,
		DefaultTimeoutSeconds:     types.DefaultTimeoutSeconds,
		MaxConcurrentAgents:       64,
		ExecutionContextRetention: 256,
		ContinueOnErrorDefault:    false,
		BackoffJitter:             false,
		MetricsNamespace:          "agentdag",
	}
}
