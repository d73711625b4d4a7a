package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoTool struct {
	name string
	desc string
}

func (e *echoTool) Name() string        { return e.name }
func (e *echoTool) Description() string { return e.desc }
func (e *echoTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	return params, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry(nil)

	err := r.Register(&echoTool{name: "echo", desc: "returns its input"}, false)
	require.NoError(t, err)

	got, err := r.Get("echo")
	require.NoError(t, err)
	assert.Equal(t, "echo", got.Name())
}

func TestRegistryDuplicateRejected(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&echoTool{name: "echo"}, false))

	err := r.Register(&echoTool{name: "echo"}, false)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegistryOverwriteAllowed(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&echoTool{name: "echo", desc: "v1"}, false))
	require.NoError(t, r.Register(&echoTool{name: "echo", desc: "v2"}, true))

	got, err := r.Get("echo")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Description())
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryListOrderIsStable(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&echoTool{name: "first"}, false))
	require.NoError(t, r.Register(&echoTool{name: "second"}, false))
	require.NoError(t, r.Register(&echoTool{name: "third"}, false))

	infos := r.List()
	require.Len(t, infos, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{infos[0].Name, infos[1].Name, infos[2].Name})
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&echoTool{name: "echo"}, false))
	require.NoError(t, r.Unregister("echo"))

	assert.False(t, r.Has("echo"))
	err := r.Unregister("echo")
	assert.ErrorIs(t, err, ErrNotFound)
}
