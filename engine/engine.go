package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/flowmesh/agentdag/agent"
	"github.com/flowmesh/agentdag/internal/ctxkeys"
	"github.com/flowmesh/agentdag/internal/metrics"
	"github.com/flowmesh/agentdag/internal/pool"
	"github.com/flowmesh/agentdag/types"
	"github.com/flowmesh/agentdag/workflow"
)

// Engine drives workflows submitted via Execute, scheduling each
// workflow's DAG layer by layer against a shared, bounded pool of agent
// goroutines.
type Engine struct {
	agents  *agent.Registry
	config  Config
	pool    *pool.GoroutinePool
	metrics *metrics.Collector
	tracer  trace.Tracer
	logger  *zap.Logger

	mu      sync.RWMutex
	active  map[string]*executionContext
	history *resultLRU
}

// NewEngine builds an Engine that creates agents from agents. logger may
// be nil, in which case a no-op logger is used.
func NewEngine(agents *agent.Registry, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		agents: agents,
		config: cfg,
		pool: pool.NewGoroutinePool(pool.GoroutinePoolConfig{
			MaxWorkers:  cfg.MaxConcurrentAgents,
			QueueSize:   cfg.MaxConcurrentAgents * 4,
			IdleTimeout: 60 * time.Second,
		}, logger),
		metrics: metrics.NewCollector(cfg.MetricsNamespace, logger),
		tracer:  otel.Tracer("github.com/flowmesh/agentdag/engine"),
		logger:  logger.With(zap.String("component", "engine")),
		active:  make(map[string]*executionContext),
		history: newResultLRU(cfg.ExecutionContextRetention),
	}
}

// Execute runs req to terminal status and returns the aggregate result.
// Validation errors are returned as a failed WorkflowResult with a
// populated Error field, never as a Go error — callers should branch on
// result.Status. The returned error is always nil; cancellation of ctx
// surfaces through the agent results and the workflow status.
func (e *Engine) Execute(ctx context.Context, req types.WorkflowRequest) (types.WorkflowResult, error) {
	workflowID := req.WorkflowID
	if workflowID == "" {
		workflowID = uuid.NewString()
	}

	ctx, span := e.tracer.Start(ctx, "engine.Execute")
	defer span.End()
	ctx = ctxkeys.WithWorkflowID(ctx, workflowID)
	logger := e.logger.With(zap.String("workflow_id", workflowID))

	ec := newExecutionContext(ctx, workflowID, req.Metadata)
	e.mu.Lock()
	e.active[workflowID] = ec
	e.mu.Unlock()
	defer e.retire(workflowID, ec)

	dag, err := workflow.NewDAG(req.Agents)
	if err != nil {
		validationErr := types.NewError(types.ErrValidation, "workflow graph is invalid").WithCause(err)
		result := ec.finish(types.WorkflowFailed, validationErr.Error())
		e.recordWorkflow(result)
		logger.Warn("workflow validation failed", zap.Error(validationErr))
		return result, nil
	}

	if err := e.validateAgentTypes(req.Agents); err != nil {
		registryErr := types.NewError(types.ErrRegistryMiss, "workflow references an unregistered agent_type").WithCause(err)
		result := ec.finish(types.WorkflowFailed, registryErr.Error())
		e.recordWorkflow(result)
		logger.Warn("workflow validation failed", zap.Error(registryErr))
		return result, nil
	}

	continueOnError := req.EffectiveContinueOnError(e.config.ContinueOnErrorDefault)
	layers := dag.Layers()

	failFastTriggered := false

layerLoop:
	for _, layer := range layers {
		if ec.isCancelled() {
			break layerLoop
		}

		runnable, skipped := e.partitionLayer(dag, ec, layer, continueOnError)
		for _, result := range skipped {
			ec.setResult(result)
		}

		if len(runnable) > 0 {
			g, gctx := errgroup.WithContext(ec.ctx)
			for _, spec := range runnable {
				spec := spec
				g.Go(func() error {
					return e.pool.SubmitWait(gctx, func(taskCtx context.Context) error {
						e.executeOne(ec, dag, spec, req.InitialInput)
						return nil
					})
				})
			}
			_ = g.Wait()
		}

		if ec.isCancelled() {
			break layerLoop
		}

		if !continueOnError && layerHasNonSuccess(ec, layer) {
			failFastTriggered = true
			break layerLoop
		}
	}

	status, errMessage := finalStatus(ec, failFastTriggered)
	result := ec.finish(status, errMessage)
	e.recordWorkflow(result)
	logger.Info("workflow finished", zap.String("status", string(status)))
	return result, nil
}

// executeOne resolves spec's inputs, creates its Agent, and runs it with
// retries, merging the terminal AgentResult into ec.
func (e *Engine) executeOne(ec *executionContext, dag *workflow.DAG, spec types.AgentSpec, initialInput map[string]any) {
	inputs := composeInputs(dag, ec, spec, initialInput)

	a, err := e.agents.Create(spec)
	if err != nil {
		result := types.AgentResult{AgentID: spec.AgentID, Error: err.Error()}
		result.MarkStarted(time.Now())
		result.MarkFinished(time.Now(), types.AgentFailed)
		ec.setResult(result)
		e.recordAgent(spec.AgentType, result)
		return
	}

	result := e.runAgent(ec.ctx, ec, spec, a, inputs)
	ec.setResult(result)
	e.recordAgent(spec.AgentType, result)
}

// composeInputs implements the normative input composition rule: config
// merged over initial_input for source agents, or over the
// upstream-id-to-output map otherwise; config wins on collision.
func composeInputs(dag *workflow.DAG, ec *executionContext, spec types.AgentSpec, initialInput map[string]any) map[string]any {
	preds := dag.Predecessors(spec.AgentID)

	base := make(map[string]any)
	if len(preds) == 0 {
		for k, v := range initialInput {
			base[k] = v
		}
	} else {
		for _, dep := range preds {
			if r, ok := ec.result(dep); ok {
				base[dep] = r.Output
			}
		}
	}

	for k, v := range spec.Config {
		base[k] = v
	}
	return base
}

// partitionLayer splits layer's agent_ids into those ready to run and
// those that must be marked skipped because an upstream ended in a
// non-success terminal state under continue-on-error mode. In fail-fast
// mode (continueOnError=false) every agent in a reached layer is
// runnable, since the engine would have stopped after the prior layer
// had any failure.
func (e *Engine) partitionLayer(dag *workflow.DAG, ec *executionContext, layer []string, continueOnError bool) (runnable []types.AgentSpec, skipped []types.AgentResult) {
	nodes := dag.Nodes()

	for _, id := range layer {
		spec := nodes[id]

		if !continueOnError {
			runnable = append(runnable, spec)
			continue
		}

		blockedBy := ""
		for _, dep := range dag.Predecessors(id) {
			if r, ok := ec.result(dep); ok && r.Status != types.AgentSuccess {
				blockedBy = dep
				break
			}
		}

		if blockedBy == "" {
			runnable = append(runnable, spec)
			continue
		}

		depResult, _ := ec.result(blockedBy)
		result := types.AgentResult{
			AgentID: id,
			Status:  types.AgentSkipped,
			Error:   fmt.Sprintf("upstream agent %q ended in status %s", blockedBy, depResult.Status),
		}
		now := time.Now()
		result.StartedAt = now
		result.FinishedAt = now
		skipped = append(skipped, result)
	}
	return
}

// layerHasNonSuccess reports whether any agent in layer has a non-success
// terminal result recorded in ec.
func layerHasNonSuccess(ec *executionContext, layer []string) bool {
	for _, id := range layer {
		r, ok := ec.result(id)
		if ok && r.Status != types.AgentSuccess {
			return true
		}
	}
	return false
}

// finalStatus derives the workflow's terminal status and error message
// from the execution context's accumulated results.
func finalStatus(ec *executionContext, failFastTriggered bool) (types.WorkflowStatus, string) {
	if ec.isCancelled() {
		cancelErr := types.NewError(types.ErrCancelled, "workflow cancelled before completion")
		return types.WorkflowCancelled, cancelErr.Error()
	}

	if failFastTriggered {
		return types.WorkflowFailed, "one or more agents failed or timed out"
	}

	snapshot := ec.snapshot()
	anySuccess, anyNonSuccess := false, false
	for _, r := range snapshot.AgentResults {
		if r.Status == types.AgentSuccess {
			anySuccess = true
		} else {
			anyNonSuccess = true
		}
	}

	switch {
	case anySuccess && anyNonSuccess:
		return types.WorkflowPartial, ""
	case anyNonSuccess:
		return types.WorkflowFailed, "all agents ended in a non-success status"
	default:
		return types.WorkflowSuccess, ""
	}
}

// validateAgentTypes rejects a request up front if any AgentSpec names an
// agent_type with no registered factory, per spec's RegistryMiss being
// reported as a ValidationError at submission time.
func (e *Engine) validateAgentTypes(specs []types.AgentSpec) error {
	for _, s := range specs {
		if !e.agents.IsRegistered(s.AgentType) {
			return fmt.Errorf("%w: %q", agent.ErrNotRegistered, s.AgentType)
		}
	}
	return nil
}

// Status returns a point-in-time snapshot of workflowID's result, whether
// still running, completed, or retired into history.
func (e *Engine) Status(workflowID string) (types.WorkflowResult, bool) {
	e.mu.RLock()
	ec, active := e.active[workflowID]
	e.mu.RUnlock()
	if active {
		return ec.snapshot(), true
	}

	if ec, ok := e.history.get(workflowID); ok {
		return ec.snapshot(), true
	}
	return types.WorkflowResult{}, false
}

// Results is an alias of Status, kept for readability parity with
// callers more comfortable asking for "results" than "status" — both
// names describe the exact same read, so there is only one code path
// behind them.
func (e *Engine) Results(workflowID string) (types.WorkflowResult, bool) {
	return e.Status(workflowID)
}

// Cancel requests cooperative cancellation of workflowID. It returns
// whether a running workflow was found; calling it again after the
// workflow reaches a terminal state returns false. Idempotent.
func (e *Engine) Cancel(workflowID string) bool {
	e.mu.RLock()
	ec, active := e.active[workflowID]
	e.mu.RUnlock()
	if !active {
		return false
	}
	ec.cancel()
	return true
}

// ListActive returns the workflow_ids currently running.
func (e *Engine) ListActive() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]string, 0, len(e.active))
	for id := range e.active {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown closes the engine's goroutine pool, waiting up to ctx's
// deadline for in-flight agent attempts to finish.
func (e *Engine) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.pool.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) retire(workflowID string, ec *executionContext) {
	e.mu.Lock()
	delete(e.active, workflowID)
	e.mu.Unlock()
	e.history.add(ec)
}

func (e *Engine) recordWorkflow(result types.WorkflowResult) {
	duration := result.FinishedAt.Sub(result.StartedAt)
	e.metrics.RecordWorkflowExecution(string(result.Status), duration)
	e.metrics.RecordPoolStats(e.pool.Stats())
}

func (e *Engine) recordAgent(agentType string, result types.AgentResult) {
	duration := time.Duration(result.DurationSeconds * float64(time.Second))
	e.metrics.RecordAgentExecution(agentType, string(result.Status), duration, result.Attempts)
}
