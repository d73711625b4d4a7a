package ctxkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowIDRoundTrip(t *testing.T) {
	ctx := WithWorkflowID(context.Background(), "wf-1")

	id, ok := WorkflowID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "wf-1", id)
}

func TestAgentIDRoundTrip(t *testing.T) {
	ctx := WithAgentID(context.Background(), "agent-1")

	id, ok := AgentID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "agent-1", id)
}

func TestMissingKeysReturnFalse(t *testing.T) {
	ctx := context.Background()

	_, ok := WorkflowID(ctx)
	assert.False(t, ok)

	_, ok = AgentID(ctx)
	assert.False(t, ok)
}

func TestKeysDoNotCollide(t *testing.T) {
	ctx := WithWorkflowID(context.Background(), "wf-1")
	ctx = WithAgentID(ctx, "agent-1")

	workflowID, ok := WorkflowID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "wf-1", workflowID)

	agentID, ok := AgentID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "agent-1", agentID)
}
