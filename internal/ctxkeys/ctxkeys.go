package ctxkeys

import "context"

// contextKey is the type used for every key this package stores in a
// context.Context, so values never collide with keys from other packages.
type contextKey string

const (
	workflowIDKey contextKey = "workflow_id"
	agentIDKey    contextKey = "agent_id"
)

// WithWorkflowID attaches a workflow_id to ctx, for log correlation and
// tracing spans across an execution's lifetime.
func WithWorkflowID(ctx context.Context, workflowID string) context.Context {
	return context.WithValue(ctx, workflowIDKey, workflowID)
}

// WorkflowID retrieves the workflow_id attached to ctx, if any.
func WorkflowID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(workflowIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// WithAgentID attaches an agent_id to ctx, scoped to a single agent
// execution task.
func WithAgentID(ctx context.Context, agentID string) context.Context {
	return context.WithValue(ctx, agentIDKey, agentID)
}

// AgentID retrieves the agent_id attached to ctx, if any.
func AgentID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(agentIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
