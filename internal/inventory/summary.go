package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

const (
	recentActivityLimit = 10
	lowStockListLimit   = 10
)

// Summary is the data behind the dashboard.
type Summary struct {
	TotalProducts    int                   `json:"total_products"`
	TotalStockValue  decimal.Decimal       `json:"total_stock_value"`
	LowStockCount    int                   `json:"low_stock_count"`
	OutOfStockCount  int                   `json:"out_of_stock_count"`
	TotalMovements   int                   `json:"total_movements"`
	MostMovedProduct repo.MostMovedProduct `json:"most_moved_product"`
	LowStock         []models.Product      `json:"low_stock"`
	RecentActivity   []models.Movement     `json:"recent_activity"`
}

func (s *Service) GetDashboardSummary(ctx context.Context) (Summary, error) {
	m, err := s.store.Metrics().GetDashboardMetrics(ctx)
	if err != nil {
		return Summary{}, apperr.Storage("load dashboard metrics", err)
	}

	limit := lowStockListLimit
	lowStock, _, err := s.store.Products().Filter(ctx, repo.ProductFilter{LowStockOnly: true, Limit: &limit})
	if err != nil {
		return Summary{}, apperr.Storage("load low stock products", err)
	}

	recent := recentActivityLimit
	activity, _, err := s.store.Movements().List(ctx, repo.MovementFilter{Limit: &recent})
	if err != nil {
		return Summary{}, apperr.Storage("load recent activity", err)
	}

	return Summary{
		TotalProducts:    m.TotalProducts,
		TotalStockValue:  m.TotalStockValue,
		LowStockCount:    m.LowStockCount,
		OutOfStockCount:  m.OutOfStockCount,
		TotalMovements:   m.TotalMovements,
		MostMovedProduct: m.MostMovedProduct,
		LowStock:         nonNil(lowStock),
		RecentActivity:   nonNil(activity),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
