package types

// DefaultMaxRetries and DefaultTimeoutSeconds are the fallback values
// applied to an AgentSpec that omits MaxRetries / TimeoutSeconds.
// engineconfig can override these at the engine level; these constants
// are only the last-resort default when no engine config is supplied.
const (
	DefaultMaxRetries     = 3
	DefaultTimeoutSeconds = 30.0
)

// AgentSpec declares one node of a workflow's DAG: which agent type to
// instantiate, what it depends on, and how it should be retried.
//
// MaxRetries is a pointer because 0 is a valid, meaningful value (run
// exactly once, no retries) distinct from "unset" (fall back to the
// engine default) — a plain int zero value can't carry that
// distinction. TimeoutSeconds has no analogous explicit-zero case
// (spec requires a positive number), so it stays a plain float64.
type AgentSpec struct {
	AgentID        string         `yaml:"agent_id" json:"agent_id"`
	AgentType      string         `yaml:"agent_type" json:"agent_type"`
	Name           string         `yaml:"name,omitempty" json:"name,omitempty"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty"`
	Inputs         []string       `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Config         map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
	MaxRetries     *int           `yaml:"max_retries,omitempty" json:"max_retries,omitempty"`
	TimeoutSeconds float64        `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
}

// DisplayName returns Name if set, otherwise AgentID, for registry
// listings and log fields.
func (s AgentSpec) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.AgentID
}

// EffectiveMaxRetries returns *s.MaxRetries if set, otherwise fallback.
func (s AgentSpec) EffectiveMaxRetries(fallback int) int {
	if s.MaxRetries != nil {
		return *s.MaxRetries
	}
	return fallback
}

// EffectiveTimeoutSeconds returns s.TimeoutSeconds if positive, otherwise fallback.
func (s AgentSpec) EffectiveTimeoutSeconds(fallback float64) float64 {
	if s.TimeoutSeconds > 0 {
		return s.TimeoutSeconds
	}
	return fallback
}

// WorkflowRequest is the declarative description of a workflow submitted
// for execution: the agents to run, their dependency wiring via Inputs,
// and the initial input available to source agents (those with no Inputs).
//
// ContinueOnError is a pointer for the same reason AgentSpec.MaxRetries
// is: an explicit false ("fail fast even though the engine default is
// continue-on-error") has to be distinguishable from "unset" (defer to
// the engine's ContinueOnErrorDefault).
type WorkflowRequest struct {
	WorkflowID      string         `yaml:"workflow_id,omitempty" json:"workflow_id,omitempty"`
	InitialInput    map[string]any `yaml:"initial_input,omitempty" json:"initial_input,omitempty"`
	Agents          []AgentSpec    `yaml:"agents" json:"agents"`
	ContinueOnError *bool          `yaml:"continue_on_error,omitempty" json:"continue_on_error,omitempty"`
	Metadata        map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// EffectiveContinueOnError returns *r.ContinueOnError if set, otherwise fallback.
func (r WorkflowRequest) EffectiveContinueOnError(fallback bool) bool {
	if r.ContinueOnError != nil {
		return *r.ContinueOnError
	}
	return fallback
}
