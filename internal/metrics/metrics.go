package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "planning_bot"

var (
	once sync.Once

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Count of backend requests by method, resource and status code.",
		},
		[]string{"method", "resource", "status"},
	)

	backendLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "resource"},
	)

	shiftsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shifts_created_total",
			Help:      "Count of shifts created by type.",
		},
		[]string{"type"},
	)

	absenceBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "absence_batches_total",
			Help:      "Count of multi-day absence batches by outcome (complete, partial, failed).",
		},
		[]string{"outcome"},
	)

	validationRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejected_total",
			Help:      "Count of payloads rejected before reaching the backend.",
		},
		[]string{"kind"},
	)

	overtimeEmployees = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overtime_employees",
			Help:      "Employees over the weekly threshold in the last computed week.",
		},
		[]string{"establishment"},
	)

	botCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_commands_total",
			Help:      "Count of bot commands handled.",
		},
		[]string{"command"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			backendRequests,
			backendLatency,
			shiftsCreated,
			absenceBatches,
			validationRejected,
			overtimeEmployees,
			botCommands,
		)
	})
}

// ObserveBackendRequest records one backend call; status 0 means transport failure.
func ObserveBackendRequest(method, resource string, status int, took time.Duration) {
	backendRequests.WithLabelValues(method, resource, strconv.Itoa(status)).Inc()
	backendLatency.WithLabelValues(method, resource).Observe(took.Seconds())
}

func IncShiftCreated(shiftType string) {
	shiftsCreated.WithLabelValues(shiftType).Inc()
}

func IncAbsenceBatch(outcome string) {
	absenceBatches.WithLabelValues(outcome).Inc()
}

func IncValidationRejected(kind string) {
	validationRejected.WithLabelValues(kind).Inc()
}

func SetOvertimeEmployees(establishmentID uint, count int) {
	overtimeEmployees.WithLabelValues(strconv.FormatUint(uint64(establishmentID), 10)).Set(float64(count))
}

func IncBotCommand(command string) {
	botCommands.WithLabelValues(command).Inc()
}
