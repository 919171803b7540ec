package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Conversation metrics
	activeRuns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_gateway_active_runs",
		Help: "Number of orchestrator runs in flight",
	})

	totalRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_gateway_runs_total",
		Help: "Total number of orchestrator runs processed",
	})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat_gateway_run_duration_seconds",
		Help:    "Duration of orchestrator runs in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	turnLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_gateway_turn_limit_total",
		Help: "Runs terminated by the turn ceiling",
	})

	// Reasoning-engine metrics
	engineRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_gateway_engine_requests_total",
		Help: "Total number of reasoning-engine requests",
	}, []string{"status"})

	engineLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat_gateway_engine_latency_seconds",
		Help:    "Reasoning-engine request latency in seconds",
		Buckets: []float64{0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
	})

	// Tool metrics
	toolExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_gateway_tool_executions_total",
		Help: "Total number of tool executions",
	}, []string{"tool", "status"})

	toolLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chat_gateway_tool_latency_seconds",
		Help:    "Tool execution latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
	}, []string{"tool"})

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_gateway_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})

	// Circuit breaker metrics
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chat_gateway_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"service"})
)

// Metrics tracks metrics for a single orchestrator run
type Metrics struct {
	runID           string
	startTime       time.Time
	engineStartTime time.Time
	mu              sync.Mutex
}

// NewRunMetrics creates a new metrics tracker for one orchestrator run
func NewRunMetrics(runID string) *Metrics {
	return &Metrics{
		runID:     runID,
		startTime: time.Now(),
	}
}

// RecordRunStart records the start of an orchestrator run
func (m *Metrics) RecordRunStart() {
	activeRuns.Inc()
	totalRuns.Inc()
}

// RecordRunEnd records the end of an orchestrator run
func (m *Metrics) RecordRunEnd() {
	activeRuns.Dec()
	runDuration.Observe(time.Since(m.startTime).Seconds())
}

// RecordTurnLimit records a run terminated by the turn ceiling
func (m *Metrics) RecordTurnLimit() {
	turnLimitHits.Inc()
}

// RecordEngineStart records the start of a reasoning-engine request
func (m *Metrics) RecordEngineStart() {
	m.mu.Lock()
	m.engineStartTime = time.Now()
	m.mu.Unlock()
}

// RecordEngineEnd records the end of a reasoning-engine request
func (m *Metrics) RecordEngineEnd(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.engineStartTime.IsZero() {
		engineLatency.Observe(time.Since(m.engineStartTime).Seconds())
	}

	status := "success"
	if !success {
		status = "error"
	}
	engineRequests.WithLabelValues(status).Inc()
}

// RecordToolExecution records one tool execution with its duration
func (m *Metrics) RecordToolExecution(tool string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	toolExecutions.WithLabelValues(tool, status).Inc()
	toolLatency.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordError records an error
func (m *Metrics) RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}

// UpdateCircuitBreakerState updates the circuit breaker state metric
func UpdateCircuitBreakerState(service string, state int) {
	circuitBreakerState.WithLabelValues(service).Set(float64(state))
}
