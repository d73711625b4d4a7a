package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmesh/agentdag/types"
)

func echoFactory(spec types.AgentSpec) (Agent, error) {
	return NewFuncAgent(func(_ context.Context, inputs map[string]any) (map[string]any, error) {
		return inputs, nil
	}), nil
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("echo", echoFactory, false))

	a, err := r.Create(types.AgentSpec{AgentID: "a1", AgentType: "echo"})
	require.NoError(t, err)
	require.NotNil(t, a)
}

func TestRegistryCreateUnregisteredType(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Create(types.AgentSpec{AgentID: "a1", AgentType: "missing"})
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("echo", echoFactory, false))

	err := r.Register("echo", echoFactory, false)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	assert.NoError(t, r.Register("echo", echoFactory, true))
}

func TestRegistryIsRegisteredAndListTypes(t *testing.T) {
	r := NewRegistry(nil)
	assert.False(t, r.IsRegistered("echo"))

	require.NoError(t, r.Register("echo", echoFactory, false))
	assert.True(t, r.IsRegistered("echo"))
	assert.Contains(t, r.ListTypes(), "echo")
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("echo", echoFactory, false))
	r.Unregister("echo")
	assert.False(t, r.IsRegistered("echo"))
}
