package models

import (
	"fmt"
	"strings"
	"time"
)

// MovementType tells whether a movement adds or removes stock.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// ParseMovementType accepts "in"/"out" in any case.
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(strings.ToUpper(strings.TrimSpace(s))) {
	case MovementIn:
		return MovementIn, nil
	case MovementOut:
		return MovementOut, nil
	}
	return "", fmt.Errorf("unknown movement type %q", s)
}

func (t MovementType) Valid() bool {
	return t == MovementIn || t == MovementOut
}

func (t MovementType) Label() string {
	if t == MovementIn {
		return "Stock In"
	}
	return "Stock Out"
}

// Movement is one entry of the append-only stock ledger.
type Movement struct {
	ID          int          `json:"id" db:"id"`
	ProductID   int          `json:"product_id" db:"product_id"`
	ProductName string       `json:"product_name,omitempty" db:"product_name"`
	Type        MovementType `json:"type" db:"type"`
	Quantity    int          `json:"quantity" db:"quantity"`
	UnitPrice   float64      `json:"unit_price" db:"unit_price"`
	Notes       string       `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// Delta is the signed change the movement applies to the product quantity.
func (m Movement) Delta() int {
	if m.Type == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

func (m Movement) Total() float64 {
	return m.UnitPrice * float64(m.Quantity)
}
