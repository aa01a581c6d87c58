// Package inventory is the controller of the tracker: the only component
// that mutates storage. Views and API handlers call it with typed inputs and
// receive updated data plus derived flags.
package inventory

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/metrics"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

// Store is the storage the service works against. *repo.Store implements it.
type Store interface {
	Products() repo.ProductRepository
	Movements() repo.MovementRepository
	Metrics() repo.MetricsRepository
	WithTx(ctx context.Context, txFunc func(repo.Tx) error) error
}

type Service struct {
	store    Store
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	// mu serializes mutations; one user action is processed at a time.
	mu sync.Mutex
}

type Option func(*Service)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp is truncated to the precision every supported database keeps.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Service) AddProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addProduct(ctx, in)
}

func (s *Service) addProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	in.normalize()
	if err := s.validateStruct(in); err != nil {
		return models.Product{}, err
	}

	now := s.timestamp()
	p := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		MinQuantity: in.MinQuantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}

	created, err := s.store.Products().Create(ctx, p)
	if err != nil {
		return models.Product{}, apperr.Storage("create product", err)
	}

	s.logger.InfoContext(ctx, "product added", slog.Int("product_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// EditProduct replaces the editable fields of product id.
func (s *Service) EditProduct(ctx context.Context, id int, in ProductInput) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.normalize()
	if err := s.validateStruct(in); err != nil {
		return models.Product{}, err
	}

	existing, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return models.Product{}, translate("load product", id, err)
	}

	applyInput(&existing, in)
	existing.UpdatedAt = s.timestamp()

	updated, err := s.store.Products().Update(ctx, existing)
	if err != nil {
		return models.Product{}, translate("update product", id, err)
	}

	s.logger.InfoContext(ctx, "product updated", slog.Int("product_id", updated.ID))
	return updated, nil
}

func applyInput(p *models.Product, in ProductInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Category = in.Category
	p.Price = in.Price
	p.MinQuantity = in.MinQuantity
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
}

// DeleteProduct removes a product that no movement references.
func (s *Service) DeleteProduct(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.WithTx(ctx, func(tx repo.Tx) error {
		if _, err := tx.Products().GetByID(ctx, id); err != nil {
			return err
		}
		refs, err := tx.Movements().CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperr.Referenced("product", id, refs)
		}
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		return translate("delete product", id, err)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.Int("product_id", id))
	return nil
}

// RecordMovement writes the ledger entry and applies its delta to the
// product quantity in one transaction.
func (s *Service) RecordMovement(ctx context.Context, in MovementInput) (MovementResult, error) {
	in.normalize()
	if err := s.validateStruct(in); err != nil {
		return MovementResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result MovementResult
	err := s.store.WithTx(ctx, func(tx repo.Tx) error {
		product, err := tx.Products().GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if in.Type == models.MovementOut && in.Quantity > product.Quantity {
			return apperr.InsufficientStock(product.ID, in.Quantity, product.Quantity)
		}

		unitPrice := product.Price
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}
		now := s.timestamp()
		movement, err := tx.Movements().Log(ctx, models.Movement{
			ProductID: product.ID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Notes:     in.Notes,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}

		updated, err := tx.Products().AdjustQuantity(ctx, product.ID, movement.Delta(), now)
		if errors.Is(err, repo.ErrInvalidQuantityChange) {
			return apperr.InsufficientStock(product.ID, in.Quantity, product.Quantity)
		}
		if err != nil {
			return err
		}

		movement.ProductName = updated.Name
		result = MovementResult{Product: updated, Movement: movement, LowStock: updated.LowStock()}
		return nil
	})
	if err != nil {
		return MovementResult{}, translate("record movement", in.ProductID, err)
	}

	s.metrics.MovementRecorded(string(in.Type), in.Quantity)
	s.logger.InfoContext(ctx, "movement recorded",
		slog.Int("movement_id", result.Movement.ID),
		slog.Int("product_id", result.Product.ID),
		slog.String("type", string(in.Type)),
		slog.Int("quantity", in.Quantity),
	)
	if result.LowStock {
		s.metrics.LowStockAlert()
		s.logger.WarnContext(ctx, "product at or below minimum quantity",
			slog.Int("product_id", result.Product.ID),
			slog.String("name", result.Product.Name),
			slog.Int("quantity", result.Product.Quantity),
			slog.Int("min_quantity", result.Product.MinQuantity),
		)
	}
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id int) (models.Product, error) {
	p, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return models.Product{}, translate("load product", id, err)
	}
	return p, nil
}

// ListProducts returns the page selected by filter and the total number of matches.
func (s *Service) ListProducts(ctx context.Context, filter repo.ProductFilter) ([]models.Product, int, error) {
	products, total, err := s.store.Products().Filter(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Storage("list products", err)
	}
	return products, total, nil
}

// ListMovements returns the movements selected by filter. A filter on a
// product that does not exist is reported as not found.
func (s *Service) ListMovements(ctx context.Context, filter repo.MovementFilter) ([]models.Movement, int, error) {
	if filter.ProductID != nil {
		if _, err := s.store.Products().GetByID(ctx, *filter.ProductID); err != nil {
			return nil, 0, translate("load product", *filter.ProductID, err)
		}
	}

	movements, total, err := s.store.Movements().List(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Storage("list movements", err)
	}
	return movements, total, nil
}

// translate maps repository failures onto the error taxonomy.
func translate(op string, productID int, err error) error {
	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repo.ErrProductNotFound):
		return apperr.NotFound("product", productID)
	default:
		return apperr.Storage(op, err)
	}
}
