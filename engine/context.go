package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/flowmesh/agentdag/types"
)

// executionContext is the engine's transient per-workflow runtime state:
// the results merged in so far, a cancellation flag settable from any
// goroutine, and the timestamps and metadata that surface on a
// WorkflowResult snapshot. It is never exposed directly outside the
// engine package — callers only ever see the types.WorkflowResult
// snapshot returned by snapshot.
type executionContext struct {
	workflowID string
	metadata   map[string]any

	mu         sync.RWMutex
	results    map[string]types.AgentResult
	status     types.WorkflowStatus
	errMessage string
	startedAt  time.Time
	finishedAt time.Time

	cancelled atomic.Bool
	ctx       context.Context
	cancelFn  context.CancelFunc
}

func newExecutionContext(parent context.Context, workflowID string, metadata map[string]any) *executionContext {
	ctx, cancelFn := context.WithCancel(parent)
	return &executionContext{
		workflowID: workflowID,
		metadata:   metadata,
		results:    make(map[string]types.AgentResult),
		status:     types.WorkflowRunning,
		startedAt:  time.Now(),
		ctx:        ctx,
		cancelFn:   cancelFn,
	}
}

// cancel sets the cancellation flag and cancels the derived context, so
// any in-flight agent.Run call parented on it observes ctx.Done()
// promptly. Idempotent.
func (ec *executionContext) cancel() {
	ec.cancelled.Store(true)
	ec.cancelFn()
}

// isCancelled reports the cancellation flag's current value.
func (ec *executionContext) isCancelled() bool {
	return ec.cancelled.Load()
}

// setResult merges one agent's terminal result into the results map.
func (ec *executionContext) setResult(result types.AgentResult) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.results[result.AgentID] = result
}

// result returns a copy of the AgentResult for agentID, if present.
func (ec *executionContext) result(agentID string) (types.AgentResult, bool) {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	r, ok := ec.results[agentID]
	return r, ok
}

// finish stamps finishedAt and the terminal status/error, then returns a
// snapshot of the final state.
func (ec *executionContext) finish(status types.WorkflowStatus, errMessage string) types.WorkflowResult {
	ec.mu.Lock()
	ec.status = status
	ec.errMessage = errMessage
	ec.finishedAt = time.Now()
	ec.mu.Unlock()

	ec.cancelFn()
	return ec.snapshot()
}

// snapshot returns a consistent point-in-time copy of the execution
// context as a types.WorkflowResult, safe to hand to callers of
// Engine.Status while the workflow may still be running.
func (ec *executionContext) snapshot() types.WorkflowResult {
	ec.mu.RLock()
	defer ec.mu.RUnlock()

	agents := make(map[string]types.AgentResult, len(ec.results))
	for id, r := range ec.results {
		agents[id] = r
	}

	return types.WorkflowResult{
		WorkflowID:   ec.workflowID,
		Status:       ec.status,
		AgentResults: agents,
		StartedAt:    ec.startedAt,
		FinishedAt:   ec.finishedAt,
		Error:        ec.errMessage,
		Metadata:     ec.metadata,
	}
}
