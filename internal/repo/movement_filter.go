package repo

import (
	"time"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

type MovementFilter struct {
	ProductID   *int
	Type        models.MovementType
	Since       *time.Time
	Until       *time.Time
	Offset      *int
	Limit       *int
	OldestFirst bool
}
