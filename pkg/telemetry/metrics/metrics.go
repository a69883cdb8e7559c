package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics for the governance layer.
//
// All recording methods are nil-safe: components accept a nil *Metrics
// when observability is disabled (tests, one-shot CLI commands).
type Metrics struct {
	registry *prometheus.Registry

	// Rate limiter
	admissions  *prometheus.CounterVec
	acquireWait *prometheus.HistogramVec

	// Budget governor
	budgetChecks *prometheus.CounterVec
	spendUnits   *prometheus.CounterVec
	budgetUsage  prometheus.Gauge
	monthSpend   prometheus.Gauge

	// Retry executor
	retryOutcomes *prometheus.CounterVec

	// Governed calls end to end
	calls        *prometheus.CounterVec
	callDuration *prometheus.HistogramVec

	// Fail-open events
	degradedEvents prometheus.Counter
}

// New creates and registers governance metrics with the provided
// registry. A nil registry gets a fresh one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,

		admissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aigovernor",
				Name:      "rate_limit_admissions_total",
				Help:      "Rate limiter admissions by category and result",
			},
			[]string{"category", "result"},
		),

		acquireWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "aigovernor",
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting for a rate limiter token",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
			},
			[]string{"category"},
		),

		budgetChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aigovernor",
				Name:      "budget_checks_total",
				Help:      "Budget admission checks by service and decision",
			},
			[]string{"service", "decision"},
		),

		spendUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aigovernor",
				Name:      "spend_units_total",
				Help:      "Estimated cost units recorded to the ledger by service",
			},
			[]string{"service"},
		),

		budgetUsage: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "aigovernor",
				Name:      "budget_usage_percent",
				Help:      "Month-to-date spend as a percentage of the soft cap",
			},
		),

		monthSpend: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "aigovernor",
				Name:      "budget_month_to_date_units",
				Help:      "Month-to-date spend in cost units",
			},
		),

		retryOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aigovernor",
				Name:      "retry_outcomes_total",
				Help:      "Retry executor terminal outcomes by class",
			},
			[]string{"outcome"},
		),

		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aigovernor",
				Name:      "governed_calls_total",
				Help:      "Governed provider calls by category and outcome",
			},
			[]string{"category", "outcome"},
		),

		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "aigovernor",
				Name:      "governed_call_duration_seconds",
				Help:      "End-to-end duration of governed calls including waits and retries",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
			},
			[]string{"category"},
		),

		degradedEvents: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "aigovernor",
				Name:      "degraded_events_total",
				Help:      "Fail-open events caused by an unreachable ledger store",
			},
		),
	}

	registry.MustRegister(
		m.admissions,
		m.acquireWait,
		m.budgetChecks,
		m.spendUnits,
		m.budgetUsage,
		m.monthSpend,
		m.retryOutcomes,
		m.calls,
		m.callDuration,
		m.degradedEvents,
	)

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordAdmission records a rate limiter admission outcome.
func (m *Metrics) RecordAdmission(category, result string) {
	if m == nil {
		return
	}
	m.admissions.WithLabelValues(category, result).Inc()
}

// ObserveAcquireWait records time spent waiting on the rate limiter.
func (m *Metrics) ObserveAcquireWait(category string, seconds float64) {
	if m == nil {
		return
	}
	m.acquireWait.WithLabelValues(category).Observe(seconds)
}

// RecordBudgetCheck records a budget admission check decision.
func (m *Metrics) RecordBudgetCheck(service, decision string) {
	if m == nil {
		return
	}
	m.budgetChecks.WithLabelValues(service, decision).Inc()
}

// RecordSpend records cost units appended to the ledger.
func (m *Metrics) RecordSpend(service string, units int64) {
	if m == nil {
		return
	}
	m.spendUnits.WithLabelValues(service).Add(float64(units))
}

// SetBudgetUsage updates the month-to-date spend gauges.
func (m *Metrics) SetBudgetUsage(percentUsed float64, monthUnits int64) {
	if m == nil {
		return
	}
	m.budgetUsage.Set(percentUsed)
	m.monthSpend.Set(float64(monthUnits))
}

// RecordRetryOutcome records a retry executor terminal outcome
// ("success", "fatal", "rate_limit_exhausted", "transient_exhausted").
func (m *Metrics) RecordRetryOutcome(outcome string) {
	if m == nil {
		return
	}
	m.retryOutcomes.WithLabelValues(outcome).Inc()
}

// RecordCall records one end-to-end governed call.
func (m *Metrics) RecordCall(category, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(category, outcome).Inc()
	m.callDuration.WithLabelValues(category).Observe(seconds)
}

// RecordDegradedEvent records one fail-open event.
func (m *Metrics) RecordDegradedEvent() {
	if m == nil {
		return
	}
	m.degradedEvents.Inc()
}
