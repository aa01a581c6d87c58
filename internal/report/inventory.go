package report

import (
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/models"
)

var inventoryColumns = []column{
	{"ID", 15, "C"},
	{"Product", 60, "L"},
	{"Category", 35, "L"},
	{"Qty", 18, "R"},
	{"Min Qty", 18, "R"},
	{"Price", 22, "R"},
	{"Status", 22, "C"},
}

func renderInventory(products []models.Product, now time.Time) (*fpdf.Fpdf, error) {
	d := newDocument(Inventory.Title(), "", inventoryColumns, now)

	var (
		outOfStock int
		lowStock   int
		value      = decimal.Zero
	)
	for _, p := range products {
		status := p.Status()
		switch status {
		case models.StatusOutOfStock:
			outOfStock++
		case models.StatusLowStock:
			lowStock++
		}
		value = value.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity))))

		d.row(
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinQuantity),
			money(p.Price),
			status.Label(),
		)
	}
	if len(products) == 0 {
		d.emptyRow("No products")
	}

	d.summary("Summary", [][2]string{
		{"Total products:", strconv.Itoa(len(products))},
		{"Out of stock:", strconv.Itoa(outOfStock)},
		{"Low stock:", strconv.Itoa(lowStock)},
		{"Total stock value:", "$" + value.StringFixed(2)},
	})

	if err := d.err(); err != nil {
		return nil, apperr.Storage("render inventory report", err)
	}
	return d.pdf, nil
}

func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
