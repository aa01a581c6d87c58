package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

func TestDashboardMetrics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedProduct(t, s, "Widget", 2.50, 5, 10)
	gadget := seedProduct(t, s, "Gadget", 10, 0, 0)
	seedProduct(t, s, "Gizmo", 0.10, 3, 1)

	now := time.Now().UTC()
	logMovement(t, s, gadget.ID, models.MovementIn, 1, now)
	logMovement(t, s, gadget.ID, models.MovementOut, 1, now)

	m, err := s.Metrics().GetDashboardMetrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, m.TotalProducts)
	assert.Equal(t, 2, m.TotalMovements)
	assert.Equal(t, 2, m.LowStockCount)
	assert.Equal(t, 1, m.OutOfStockCount)
	assert.Equal(t, "12.8", m.TotalStockValue.String())
	assert.Equal(t, "Gadget", m.MostMovedProduct.Name)
	assert.Equal(t, 2, m.MostMovedProduct.MovementCount)
}

func TestDashboardMetricsEmpty(t *testing.T) {
	s := newTestStore(t)

	m, err := s.Metrics().GetDashboardMetrics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, m.TotalProducts)
	assert.True(t, m.TotalStockValue.IsZero())
	assert.Empty(t, m.MostMovedProduct.Name)
}
