package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/flowmesh/agentdag/internal/pool"
)

// Collector holds the Prometheus vectors the execution engine updates as
// workflows and agents move through their lifecycle.
type Collector struct {
	workflowExecutionsTotal   *prometheus.CounterVec
	workflowExecutionDuration *prometheus.HistogramVec

	agentExecutionsTotal   *prometheus.CounterVec
	agentExecutionDuration *prometheus.HistogramVec
	agentRetryAttempts     *prometheus.HistogramVec

	poolWorkers  prometheus.Gauge
	poolActive   prometheus.Gauge
	poolQueued   prometheus.Gauge
	poolRejected prometheus.Gauge

	logger *zap.Logger
}

// NewCollector registers the engine's metric vectors under namespace
// using promauto's default registry.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.workflowExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_executions_total",
			Help:      "Total number of workflow executions by terminal status",
		},
		[]string{"status"},
	)

	c.workflowExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "workflow_execution_duration_seconds",
			Help:      "Workflow execution duration in seconds, from submission to terminal status",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"status"},
	)

	c.agentExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_executions_total",
			Help:      "Total number of agent executions by agent_type and terminal status",
		},
		[]string{"agent_type", "status"},
	)

	c.agentExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_execution_duration_seconds",
			Help:      "Agent execution duration in seconds, across all attempts",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"agent_type"},
	)

	c.agentRetryAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_retry_attempts",
			Help:      "Number of attempts an agent execution took before reaching a terminal status",
			Buckets:   []float64{1, 2, 3, 4, 5, 6},
		},
		[]string{"agent_type"},
	)

	c.poolWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "agent_pool_workers",
		Help:      "Current number of live worker goroutines in the agent execution pool",
	})

	c.poolActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "agent_pool_active",
		Help:      "Current number of agent attempts being executed by the pool",
	})

	c.poolQueued = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "agent_pool_queued",
		Help:      "Current number of agent attempts waiting for a free worker",
	})

	c.poolRejected = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "agent_pool_rejected_total",
		Help:      "Cumulative number of agent attempts rejected because the pool was closed or the caller's context ended first",
	})

	c.logger.Info("metrics collector initialized", zap.String("namespace", namespace))
	return c
}

// RecordWorkflowExecution records one completed workflow's terminal status
// and total duration.
func (c *Collector) RecordWorkflowExecution(status string, duration time.Duration) {
	c.workflowExecutionsTotal.WithLabelValues(status).Inc()
	c.workflowExecutionDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordAgentExecution records one agent's terminal status, duration, and
// attempt count.
func (c *Collector) RecordAgentExecution(agentType, status string, duration time.Duration, attempts int) {
	c.agentExecutionsTotal.WithLabelValues(agentType, status).Inc()
	c.agentExecutionDuration.WithLabelValues(agentType).Observe(duration.Seconds())
	c.agentRetryAttempts.WithLabelValues(agentType).Observe(float64(attempts))
}

// RecordPoolStats mirrors a point-in-time snapshot of the shared agent
// execution pool onto gauges, so dashboards can see queue depth and
// worker saturation alongside per-workflow and per-agent outcomes.
func (c *Collector) RecordPoolStats(stats pool.GoroutinePoolStats) {
	c.poolWorkers.Set(float64(stats.Workers))
	c.poolActive.Set(float64(stats.Active))
	c.poolQueued.Set(float64(stats.Queued))
	c.poolRejected.Set(float64(stats.Rejected))
}
