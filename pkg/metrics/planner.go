package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "freezerplan"

// PlannerMetrics records planner operation outcomes.
type PlannerMetrics struct {
	duration    *prometheus.HistogramVec
	success     *prometheus.CounterVec
	failure     *prometheus.CounterVec
	pickupUnits prometheus.Counter
	cache       *prometheus.CounterVec
}

// NewPlannerMetrics registers the planner metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewPlannerMetrics(reg prometheus.Registerer) *PlannerMetrics {
	if reg == nil {
		return &PlannerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of planner operations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_success_total",
		Help:      "Successful planner operations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_failure_total",
		Help:      "Failed planner operations.",
	}, []string{"operation"})
	pickupUnits := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pickup_units_total",
		Help:      "Units moved from deliveries to in-store pickup by the freezer simulation.",
	})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calendar_cache_total",
		Help:      "Calendar cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(duration, success, failure, pickupUnits, cache)
	return &PlannerMetrics{
		duration:    duration,
		success:     success,
		failure:     failure,
		pickupUnits: pickupUnits,
		cache:       cache,
	}
}

// Observe records the duration and outcome of one operation.
func (m *PlannerMetrics) Observe(operation string, duration time.Duration, err error) {
	if m == nil || m.duration == nil {
		return
	}
	op := normalizeLabel(operation)
	m.duration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		m.failure.WithLabelValues(op).Inc()
		return
	}
	m.success.WithLabelValues(op).Inc()
}

// AddPickupUnits counts units offloaded to pickup.
func (m *PlannerMetrics) AddPickupUnits(units int) {
	if m == nil || m.pickupUnits == nil || units <= 0 {
		return
	}
	m.pickupUnits.Add(float64(units))
}

// CacheResult counts a calendar cache lookup outcome (hit, miss or error).
func (m *PlannerMetrics) CacheResult(result string) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
