package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type SQLMetricsRepository struct {
	db sqlx.ExtContext
}

func NewSQLMetricsRepository(db sqlx.ExtContext) *SQLMetricsRepository {
	return &SQLMetricsRepository{db: db}
}

func (r *SQLMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var m Metrics

	counts := []struct {
		dest  *int
		query string
	}{
		{&m.TotalProducts, `SELECT COUNT(*) FROM products`},
		{&m.TotalMovements, `SELECT COUNT(*) FROM movements`},
		{&m.LowStockCount, `SELECT COUNT(*) FROM products WHERE quantity <= min_quantity`},
		{&m.OutOfStockCount, `SELECT COUNT(*) FROM products WHERE quantity <= 0`},
	}
	for _, c := range counts {
		if err := sqlx.GetContext(ctx, r.db, c.dest, c.query); err != nil {
			return Metrics{}, fmt.Errorf("failed to query metrics: %w", err)
		}
	}

	value, err := r.stockValue(ctx)
	if err != nil {
		return Metrics{}, err
	}
	m.TotalStockValue = value

	err = r.db.QueryRowxContext(ctx, `
		SELECT p.name, COUNT(*) AS cnt
		FROM movements m
		JOIN products p ON m.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY cnt DESC, p.id ASC
		LIMIT 1
	`).Scan(&m.MostMovedProduct.Name, &m.MostMovedProduct.MovementCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Metrics{}, fmt.Errorf("failed to query most moved product: %w", err)
	}

	return m, nil
}

// stockValue sums price × quantity in decimal so cents do not drift.
func (r *SQLMetricsRepository) stockValue(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT price, quantity FROM products`)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query stock value: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var (
			price    float64
			quantity int64
		)
		if err := rows.Scan(&price, &quantity); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan stock value: %w", err)
		}
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(quantity)))
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to read stock value: %w", err)
	}
	return total, nil
}
