package inventory

import (
	"strings"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

// ProductInput carries the editable fields of a product. A nil Quantity
// keeps the current quantity when editing and means zero when adding.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Category    string  `json:"category" validate:"max=100"`
	Price       float64 `json:"price" validate:"finite,gte=0"`
	Quantity    *int    `json:"quantity" validate:"omitempty,gte=0"`
	MinQuantity int     `json:"min_quantity" validate:"gte=0"`
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
}

// MovementInput describes a stock-in or stock-out. UnitPrice defaults to
// the product's current price.
type MovementInput struct {
	ProductID int                 `json:"product_id" validate:"required"`
	Type      models.MovementType `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  int                 `json:"quantity" validate:"gt=0"`
	UnitPrice *float64            `json:"unit_price" validate:"omitempty,finite,gte=0"`
	Notes     string              `json:"notes" validate:"max=500"`
}

func (in *MovementInput) normalize() {
	in.Type = models.MovementType(strings.ToUpper(strings.TrimSpace(string(in.Type))))
	in.Notes = strings.TrimSpace(in.Notes)
}

// MovementResult is what the caller needs to refresh after a movement.
type MovementResult struct {
	Product  models.Product  `json:"product"`
	Movement models.Movement `json:"movement"`
	LowStock bool            `json:"low_stock"`
}
