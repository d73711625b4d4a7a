package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgentSpecDisplayName(t *testing.T) {
	withName := AgentSpec{AgentID: "a1", Name: "First Agent"}
	assert.Equal(t, "First Agent", withName.DisplayName())

	withoutName := AgentSpec{AgentID: "a1"}
	assert.Equal(t, "a1", withoutName.DisplayName())
}

func TestAgentSpecEffectiveMaxRetries(t *testing.T) {
	unset := AgentSpec{}
	assert.Equal(t, 5, unset.EffectiveMaxRetries(5))

	zero := 0
	explicitZero := AgentSpec{MaxRetries: &zero}
	assert.Equal(t, 0, explicitZero.EffectiveMaxRetries(5))

	two := 2
	explicitTwo := AgentSpec{MaxRetries: &two}
	assert.Equal(t, 2, explicitTwo.EffectiveMaxRetries(5))
}

func TestAgentSpecEffectiveTimeoutSeconds(t *testing.T) {
	unset := AgentSpec{}
	assert.Equal(t, 30.0, unset.EffectiveTimeoutSeconds(30))

	set := AgentSpec{TimeoutSeconds: 5}
	assert.Equal(t, 5.0, set.EffectiveTimeoutSeconds(30))
}

func TestWorkflowRequestEffectiveContinueOnError(t *testing.T) {
	unset := WorkflowRequest{}
	assert.True(t, unset.EffectiveContinueOnError(true))
	assert.False(t, unset.EffectiveContinueOnError(false))

	no := false
	explicitFalse := WorkflowRequest{ContinueOnError: &no}
	assert.False(t, explicitFalse.EffectiveContinueOnError(true))

	yes := true
	explicitTrue := WorkflowRequest{ContinueOnError: &yes}
	assert.True(t, explicitTrue.EffectiveContinueOnError(false))
}
