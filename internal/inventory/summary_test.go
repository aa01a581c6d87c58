package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

func TestDashboardSummary(t *testing.T) {
	svc := newTestService(t, newTestStore(t))
	ctx := context.Background()

	mustAdd(t, svc, "Widget", 2.50, 5, 10)
	mustAdd(t, svc, "Gadget", 10, 0, 0)

	s, err := svc.GetDashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalProducts)
	assert.Equal(t, "12.5", s.TotalStockValue.String())
	assert.Equal(t, "12.50", s.TotalStockValue.StringFixed(2))
	assert.Equal(t, 2, s.LowStockCount)
	assert.Equal(t, 1, s.OutOfStockCount)
	assert.Len(t, s.LowStock, 2)
	assert.Empty(t, s.RecentActivity)
	assert.NotNil(t, s.RecentActivity)
}

func TestDashboardSummaryRecentActivity(t *testing.T) {
	svc := newTestService(t, newTestStore(t))
	ctx := context.Background()
	p := mustAdd(t, svc, "Nail", 0.01, 0, 0)

	for i := 1; i <= 12; i++ {
		_, err := svc.RecordMovement(ctx, MovementInput{ProductID: p.ID, Type: models.MovementIn, Quantity: i})
		require.NoError(t, err)
	}

	s, err := svc.GetDashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, s.TotalMovements)
	require.Len(t, s.RecentActivity, 10)
	assert.Equal(t, 12, s.RecentActivity[0].Quantity, "newest first")
	assert.Equal(t, "Nail", s.MostMovedProduct.Name)
	assert.Equal(t, 12, s.MostMovedProduct.MovementCount)
	assert.Zero(t, s.LowStockCount)
}
