// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package engineconfig loads engine.Config from a YAML file plus
environment variable overrides, using the same builder pattern and
priority order (defaults → file → environment) as the rest of the
module's configuration loading.

	cfg, err := engineconfig.NewLoader().
	    WithConfigPath("engine.yaml").
	    WithEnvPrefix("AGENTDAG").
	    Load()
*/
package engineconfig
