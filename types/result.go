package types

import "time"

// AgentResult is the outcome of one agent's execution within a workflow,
// recorded whether it succeeded, failed, timed out, was cancelled, or
// was skipped because an upstream dependency did not succeed.
type AgentResult struct {
	AgentID         string         `json:"agent_id"`
	Status          AgentStatus    `json:"status"`
	Output          map[string]any `json:"output,omitempty"`
	Error           string         `json:"error,omitempty"`
	Attempts        int            `json:"attempts"`
	StartedAt       time.Time      `json:"started_at,omitempty"`
	FinishedAt      time.Time      `json:"finished_at,omitempty"`
	DurationSeconds float64        `json:"duration_seconds"`
}

// MarkStarted stamps StartedAt and transitions Status to running.
func (r *AgentResult) MarkStarted(now time.Time) {
	r.StartedAt = now
	r.Status = AgentRunning
}

// MarkFinished stamps FinishedAt and DurationSeconds given the final status.
func (r *AgentResult) MarkFinished(now time.Time, status AgentStatus) {
	r.FinishedAt = now
	r.Status = status
	if !r.StartedAt.IsZero() {
		r.DurationSeconds = now.Sub(r.StartedAt).Seconds()
	}
}

// WorkflowResult is the aggregate outcome of executing a WorkflowRequest:
// one AgentResult per agent in the request, plus a rolled-up status.
type WorkflowResult struct {
	WorkflowID   string                 `json:"workflow_id"`
	Status       WorkflowStatus         `json:"status"`
	AgentResults map[string]AgentResult `json:"agent_results"`
	StartedAt    time.Time              `json:"started_at,omitempty"`
	FinishedAt   time.Time              `json:"finished_at,omitempty"`
	Error        string                 `json:"error,omitempty"`
	Metadata     map[string]any         `json:"metadata,omitempty"`
}
