package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/flowmesh/agentdag/agent"
	"github.com/flowmesh/agentdag/internal/ctxkeys"
	"github.com/flowmesh/agentdag/types"
)

// runAgent executes a with the given inputs under spec's retry/timeout
// policy, per the normative per-agent loop: each attempt runs under its
// own timeout context; a timeout or failure is retried up to
// maxRetries+1 total attempts with exponential backoff between tries;
// the engine-level cancellation flag aborts the loop promptly without a
// further retry.
func (e *Engine) runAgent(ctx context.Context, ec *executionContext, spec types.AgentSpec, a agent.Agent, inputs map[string]any) types.AgentResult {
	logger := e.logger.With(
		zap.String("workflow_id", ec.workflowID),
		zap.String("agent_id", spec.AgentID),
		zap.String("agent_type", spec.AgentType),
	)

	ctx = ctxkeys.WithAgentID(ctx, spec.AgentID)

	maxRetries := spec.EffectiveMaxRetries(e.config.DefaultMaxRetries)
	timeoutSeconds := spec.EffectiveTimeoutSeconds(e.config.DefaultTimeoutSeconds)
	timeout := time.Duration(timeoutSeconds * float64(time.Second))

	result := types.AgentResult{AgentID: spec.AgentID}
	startedAt := time.Now()
	result.MarkStarted(startedAt)

	bo := newAttemptBackOff(e.config.BackoffJitter)

	var lastErr error
	attempts := 0

	for {
		if ec.isCancelled() {
			result.Error = "cancelled before attempt"
			result.Attempts = attempts
			result.MarkFinished(time.Now(), types.AgentCancelled)
			return result
		}

		attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		output, err := a.Run(attemptCtx, inputs)
		attemptErr := err
		if attemptErr == nil && attemptCtx.Err() == context.DeadlineExceeded {
			attemptErr = attemptCtx.Err()
		}
		cancel()

		if ec.isCancelled() {
			result.Error = "cancelled during attempt"
			result.Attempts = attempts
			result.MarkFinished(time.Now(), types.AgentCancelled)
			return result
		}

		if attemptErr == nil {
			result.Output = output
			result.Attempts = attempts
			result.MarkFinished(time.Now(), types.AgentSuccess)
			logger.Info("agent succeeded", zap.Int("attempts", attempts))
			return result
		}

		lastErr = attemptErr
		timedOut := attemptCtx.Err() == context.DeadlineExceeded

		if attempts > maxRetries {
			status := types.AgentFailed
			if timedOut {
				status = types.AgentTimeout
			}
			result.Error = fmt.Sprintf("%s after %d attempts: %v", statusVerb(status), attempts, lastErr)
			result.Attempts = attempts
			result.MarkFinished(time.Now(), status)
			logger.Warn("agent exhausted retries", zap.Int("attempts", attempts), zap.Error(lastErr))
			return result
		}

		delay := delayForAttempt(bo)
		logger.Debug("agent attempt failed, backing off",
			zap.Int("attempt", attempts),
			zap.Duration("delay", delay),
			zap.Error(lastErr),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			result.Error = "cancelled during backoff"
			result.Attempts = attempts
			result.MarkFinished(time.Now(), types.AgentCancelled)
			return result
		}
	}
}

func statusVerb(status types.AgentStatus) string {
	if status == types.AgentTimeout {
		return "timed out"
	}
	return "failed"
}
