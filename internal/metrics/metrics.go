// Package metrics holds the Prometheus collectors of the tracker.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	movements     *prometheus.CounterVec
	movementUnits *prometheus.CounterVec
	lowStock      prometheus.Counter
	reports       *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		movements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockroom_movements_total",
				Help: "Total number of stock movements recorded",
			},
			[]string{"type"},
		),
		movementUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockroom_movement_units_total",
				Help: "Total number of units moved in or out of stock",
			},
			[]string{"type"},
		),
		lowStock: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stockroom_low_stock_alerts_total",
				Help: "Number of movements that left a product at or below its threshold",
			},
		),
		reports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockroom_reports_generated_total",
				Help: "Total number of PDF reports generated",
			},
			[]string{"type", "status"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockroom_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockroom_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(m.movements, m.movementUnits, m.lowStock, m.reports, m.httpRequests, m.httpDuration)
	return m
}

// The recorders below accept a nil receiver so callers that run without
// metrics do not need to guard every call.

func (m *Metrics) MovementRecorded(movementType string, quantity int) {
	if m == nil {
		return
	}
	m.movements.WithLabelValues(movementType).Inc()
	m.movementUnits.WithLabelValues(movementType).Add(float64(quantity))
}

func (m *Metrics) LowStockAlert() {
	if m == nil {
		return
	}
	m.lowStock.Inc()
}

func (m *Metrics) ReportGenerated(reportType string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.reports.WithLabelValues(reportType, status).Inc()
}

func (m *Metrics) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
