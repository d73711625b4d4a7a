// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

// Package types defines the data model shared by the workflow, agent,
// tool, and engine packages: the declarative shape of a workflow
// request, the per-agent and per-workflow results the engine produces,
// and the structured error type used across the module.
package types
