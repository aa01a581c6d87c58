package models

import "time"

// StockStatus is the coarse stock state shown in lists and reports.
type StockStatus string

const (
	StatusInStock    StockStatus = "IN_STOCK"
	StatusLowStock   StockStatus = "LOW_STOCK"
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// Label returns the human readable form of the status.
func (s StockStatus) Label() string {
	switch s {
	case StatusOutOfStock:
		return "Out of Stock"
	case StatusLowStock:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

// Product represents a product entity in the inventory system.
type Product struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Category    string    `json:"category,omitempty" db:"category"`
	Price       float64   `json:"price" db:"price"`
	Quantity    int       `json:"quantity" db:"quantity"`
	MinQuantity int       `json:"min_quantity" db:"min_quantity"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// LowStock reports whether the quantity on hand has reached the product's threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.MinQuantity
}

func (p Product) OutOfStock() bool {
	return p.Quantity <= 0
}

func (p Product) Status() StockStatus {
	switch {
	case p.OutOfStock():
		return StatusOutOfStock
	case p.LowStock():
		return StatusLowStock
	default:
		return StatusInStock
	}
}
