package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	GetByName(ctx context.Context, name string) (models.Product, error)
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id int) error
	AdjustQuantity(ctx context.Context, id int, delta int, at time.Time) (models.Product, error)
}

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQuantityChange is returned when an adjustment would make the quantity negative.
	ErrInvalidQuantityChange = errors.New("quantity cannot become negative")
)
