package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

const productColumns = `id, name, description, category, price, quantity, min_quantity, created_at, updated_at`

type SQLProductRepository struct {
	db sqlx.ExtContext
}

func NewSQLProductRepository(db sqlx.ExtContext) *SQLProductRepository {
	return &SQLProductRepository{db: db}
}

func (r *SQLProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := r.db.Rebind(`INSERT INTO products (name, description, category, price, quantity, min_quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.db.QueryRowxContext(ctx, query,
		p.Name, p.Description, p.Category, p.Price, p.Quantity, p.MinQuantity, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *SQLProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)
	return r.getOne(ctx, query, id)
}

func (r *SQLProductRepository) GetByName(ctx context.Context, name string) (models.Product, error) {
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE name = ? ORDER BY id LIMIT 1`)
	return r.getOne(ctx, query, name)
}

func (r *SQLProductRepository) getOne(ctx context.Context, query string, args ...any) (models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var p models.Product
	err := sqlx.GetContext(ctx, r.db, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return normalizeProduct(p), nil
}

func (r *SQLProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := r.db.Rebind(`UPDATE products
		SET name = ?, description = ?, category = ?, price = ?, quantity = ?, min_quantity = ?, updated_at = ?
		WHERE id = ?`)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Category, p.Price, p.Quantity, p.MinQuantity, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *SQLProductRepository) Delete(ctx context.Context, id int) error {
	query := r.db.Rebind(`DELETE FROM products WHERE id = ?`)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Filter returns the page of products selected by pf and the total number of matches.
func (r *SQLProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args := filterConditions(pf)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var totalCount int
	countQuery := r.db.Rebind("SELECT COUNT(*) FROM products WHERE 1=1" + conditions)
	if err := sqlx.GetContext(ctx, r.db, &totalCount, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1` + conditions + ` ORDER BY id`
	if pf.Limit != nil && *pf.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, *pf.Limit)
		if pf.Offset != nil && *pf.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, *pf.Offset)
		}
	} else if pf.Offset != nil && *pf.Offset > 0 {
		// OFFSET needs a LIMIT in SQLite; -1 means unbounded there and is rejected by Postgres,
		// so use the largest positive int64 instead.
		query += " LIMIT ? OFFSET ?"
		args = append(args, int64(1<<63-1), *pf.Offset)
	}

	var products []models.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to select products: %w", err)
	}
	for i := range products {
		products[i] = normalizeProduct(products[i])
	}

	return products, totalCount, nil
}

func filterConditions(pf ProductFilter) (string, []any) {
	var sb strings.Builder
	args := []any{}

	if pf.Search != "" {
		term := "%" + strings.ToLower(pf.Search) + "%"
		sb.WriteString(" AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?)")
		args = append(args, term, term, term)
	}
	if pf.Name != "" {
		sb.WriteString(" AND LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(pf.Name)+"%")
	}
	if pf.Category != "" {
		sb.WriteString(" AND LOWER(category) = ?")
		args = append(args, strings.ToLower(pf.Category))
	}
	if pf.MinPrice != nil {
		sb.WriteString(" AND price >= ?")
		args = append(args, *pf.MinPrice)
	}
	if pf.MaxPrice != nil {
		sb.WriteString(" AND price <= ?")
		args = append(args, *pf.MaxPrice)
	}
	if pf.MinQty != nil {
		sb.WriteString(" AND quantity >= ?")
		args = append(args, *pf.MinQty)
	}
	if pf.MaxQty != nil {
		sb.WriteString(" AND quantity <= ?")
		args = append(args, *pf.MaxQty)
	}
	if pf.LowStockOnly {
		sb.WriteString(" AND quantity <= min_quantity")
	}

	return sb.String(), args
}

// AdjustQuantity applies delta to the product quantity and stamps
// updated_at with at. The WHERE clause refuses any change that would leave
// the quantity negative.
func (r *SQLProductRepository) AdjustQuantity(ctx context.Context, id int, delta int, at time.Time) (models.Product, error) {
	query := r.db.Rebind(`
		UPDATE products
		SET quantity = quantity + ?, updated_at = ?
		WHERE id = ? AND quantity + ? >= 0
		RETURNING ` + productColumns)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var p models.Product
	err := sqlx.GetContext(ctx, r.db, &p, query, delta, at.UTC(), id, delta)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrProductNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, ErrInvalidQuantityChange
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to adjust quantity: %w", err)
	}
	return normalizeProduct(p), nil
}

func normalizeProduct(p models.Product) models.Product {
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p
}
