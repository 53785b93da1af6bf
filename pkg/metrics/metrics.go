// Package metrics holds the Prometheus collectors of the donation service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded for lifecycle operations
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics groups the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	requestCounter     *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	operations         *prometheus.CounterVec
	statusTransitions  *prometheus.CounterVec
	disposedQuantities *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "donation_service_requests_total",
				Help: "Total number of requests to donation service",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "donation_service_request_duration_seconds",
				Help:    "Duration of donation service requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "donation_service_operations_total",
				Help: "Lifecycle operations by name and outcome",
			},
			[]string{"operation", "outcome"},
		),
		statusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "donation_service_status_transitions_total",
				Help: "Donation status changes by source and target status",
			},
			[]string{"from", "to"},
		),
		disposedQuantities: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "donation_service_disposed_quantity_total",
				Help: "Units routed to inventory or waste by dispositions",
			},
			[]string{"route"},
		),
	}

	reg.MustRegister(
		m.requestCounter,
		m.requestLatency,
		m.operations,
		m.statusTransitions,
		m.disposedQuantities,
	)
	return m
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// Operation counts a finished lifecycle operation
func (m *Metrics) Operation(name string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.operations.WithLabelValues(name, outcome).Inc()
}

// StatusTransition counts a donation status change
func (m *Metrics) StatusTransition(from, to string) {
	if m == nil || from == to {
		return
	}
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

// Disposed adds the quantities a disposition routed to inventory and waste
func (m *Metrics) Disposed(approved, rejected int) {
	if m == nil {
		return
	}
	m.disposedQuantities.WithLabelValues("inventory").Add(float64(approved))
	m.disposedQuantities.WithLabelValues("waste").Add(float64(rejected))
}
