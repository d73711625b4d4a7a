package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderDefaultsOnly(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.DefaultMaxRetries)
	assert.Equal(t, 64, cfg.MaxConcurrentAgents)
	assert.Equal(t, "agentdag", cfg.MetricsNamespace)
}

func TestLoaderReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	contents := []byte(`
max_concurrent_agents: 8
metrics_namespace: testns
continue_on_error_default: true
`)
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MaxConcurrentAgents)
	assert.Equal(t, "testns", cfg.MetricsNamespace)
	assert.True(t, cfg.ContinueOnErrorDefault)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 3, cfg.DefaultMaxRetries)
}

func TestLoaderMissingFileIsNotAnError(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxConcurrentAgents)
}

func TestLoaderEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_concurrent_agents: 8\n"), 0o644))

	t.Setenv("TESTPREFIX_MAX_CONCURRENT_AGENTS", "16")
	t.Setenv("TESTPREFIX_BACKOFF_JITTER", "true")

	cfg, err := NewLoader().WithConfigPath(path).WithEnvPrefix("TESTPREFIX").Load()
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.MaxConcurrentAgents)
	assert.True(t, cfg.BackoffJitter)
}

func TestLoaderRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_concurrent_agents: [not, a, scalar]\n"), 0o644))

	_, err := NewLoader().WithConfigPath(path).Load()
	assert.Error(t, err)
}

func TestLoaderRejectsMalformedEnvValue(t *testing.T) {
	t.Setenv("TESTPREFIX2_MAX_CONCURRENT_AGENTS", "not-a-number")
	_, err := NewLoader().WithEnvPrefix("TESTPREFIX2").Load()
	assert.Error(t, err)
}
