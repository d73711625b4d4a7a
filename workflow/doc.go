// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

// Package workflow builds and validates the DAG of AgentSpecs a
// WorkflowRequest describes, and computes the topological layers the
// execution engine schedules agents against.
package workflow
