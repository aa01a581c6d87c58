package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

type SQLMovementRepository struct {
	db sqlx.ExtContext
}

func NewSQLMovementRepository(db sqlx.ExtContext) *SQLMovementRepository {
	return &SQLMovementRepository{db: db}
}

// Log inserts a new inventory movement
func (r *SQLMovementRepository) Log(ctx context.Context, m models.Movement) (models.Movement, error) {
	query := r.db.Rebind(`INSERT INTO movements (product_id, type, quantity, unit_price, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.db.QueryRowxContext(ctx, query,
		m.ProductID, string(m.Type), m.Quantity, m.UnitPrice, m.Notes, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return models.Movement{}, fmt.Errorf("failed to insert movement: %w", err)
	}
	return m, nil
}

// List returns the movements selected by mf, newest first unless
// mf.OldestFirst is set, along with the total number of matches.
func (r *SQLMovementRepository) List(ctx context.Context, mf MovementFilter) ([]models.Movement, int, error) {
	whereClause, args := buildWhereClause(mf)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var total int
	countQuery := r.db.Rebind("SELECT COUNT(*) FROM movements m " + whereClause)
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	// Early return if offset is beyond total
	if mf.Offset != nil && *mf.Offset >= total {
		return []models.Movement{}, total, nil
	}

	query, queryArgs := buildMainQuery(whereClause, args, mf)
	var movements []models.Movement
	if err := sqlx.SelectContext(ctx, r.db, &movements, r.db.Rebind(query), queryArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	for i := range movements {
		movements[i].CreatedAt = movements[i].CreatedAt.UTC()
	}

	return movements, total, nil
}

func (r *SQLMovementRepository) CountByProduct(ctx context.Context, productID int) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM movements WHERE product_id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &count, query, productID); err != nil {
		return 0, fmt.Errorf("failed to count movements: %w", err)
	}
	return count, nil
}

// buildWhereClause constructs the WHERE clause and returns arguments
func buildWhereClause(mf MovementFilter) (string, []any) {
	conds := []string{"1=1"}
	args := []any{}

	if mf.ProductID != nil {
		conds = append(conds, "m.product_id = ?")
		args = append(args, *mf.ProductID)
	}
	if mf.Type != "" {
		conds = append(conds, "m.type = ?")
		args = append(args, string(mf.Type))
	}
	if mf.Since != nil {
		conds = append(conds, "m.created_at >= ?")
		args = append(args, mf.Since.UTC())
	}
	if mf.Until != nil {
		conds = append(conds, "m.created_at <= ?")
		args = append(args, mf.Until.UTC())
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// buildMainQuery constructs the main SELECT query with pagination
func buildMainQuery(whereClause string, baseArgs []any, mf MovementFilter) (string, []any) {
	order := "DESC"
	if mf.OldestFirst {
		order = "ASC"
	}
	query := fmt.Sprintf(`SELECT m.id, m.product_id, p.name AS product_name, m.type, m.quantity, m.unit_price, m.notes, m.created_at
		FROM movements m JOIN products p ON p.id = m.product_id
		%s ORDER BY m.created_at %s, m.id %s`, whereClause, order, order)
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)

	limit := int64(1<<63 - 1)
	if mf.Limit != nil && *mf.Limit > 0 {
		limit = int64(*mf.Limit)
	}
	query += " LIMIT ?"
	args = append(args, limit)

	if mf.Offset != nil && *mf.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, *mf.Offset)
	}

	return query, args
}
