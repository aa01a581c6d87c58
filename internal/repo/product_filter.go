package repo

type ProductFilter struct {
	// Search matches name, description or category, case-insensitively.
	Search       string
	Name         string
	Category     string
	MinPrice     *float64
	MaxPrice     *float64
	MinQty       *int
	MaxQty       *int
	LowStockOnly bool
	Offset       *int
	Limit        *int
}
