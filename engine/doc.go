// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

// Package engine drives workflow execution: it builds and validates a
// workflow's DAG, schedules agents layer by layer with bounded
// concurrency, retries and times out individual agent attempts, and
// aggregates the results into a WorkflowResult. It supports cooperative
// cancellation and keeps a bounded history of recently completed
// executions queryable by workflow_id.
package engine
