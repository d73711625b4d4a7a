// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package metrics provides Prometheus instrumentation for workflow and
agent execution, registered through promauto so the engine never has to
manage a Registry by hand.

# Core type

  - Collector: holds the workflow- and agent-scoped Counter and Histogram
    vectors, namespaced at construction time.

# Metrics

  - Workflow: executions total (by status), execution duration.
  - Agent: executions total (by agent_type, status), execution duration,
    retry attempts observed per terminal result.
*/
package metrics
