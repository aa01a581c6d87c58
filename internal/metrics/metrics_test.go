package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.MovementRecorded("IN", 5)
	m.MovementRecorded("IN", 3)
	m.MovementRecorded("OUT", 2)
	m.LowStockAlert()
	m.ReportGenerated("inventory", nil)
	m.ReportGenerated("inventory", errors.New("disk full"))
	m.HTTPRequest(http.MethodGet, "/products", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.movements.WithLabelValues("IN")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.movementUnits.WithLabelValues("IN")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.movementUnits.WithLabelValues("OUT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lowStock))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("inventory", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/products", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.MovementRecorded("IN", 1)
		m.LowStockAlert()
		m.ReportGenerated("transactions", nil)
		m.HTTPRequest(http.MethodPost, "/", http.StatusCreated, time.Second)
	})
}
