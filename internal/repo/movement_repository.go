package repo

import (
	"context"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

type MovementRepository interface {
	// Log appends a movement to the ledger and returns it with its id.
	Log(ctx context.Context, m models.Movement) (models.Movement, error)
	List(ctx context.Context, mf MovementFilter) ([]models.Movement, int, error)
	CountByProduct(ctx context.Context, productID int) (int, error)
}
