package handlers

import (
	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/models"
)

type ProductRequest = inventory.ProductInput

type ProductResponse struct {
	models.Product
	LowStock bool               `json:"low_stock"`
	Status   models.StockStatus `json:"status"`
}

func newProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Product: p, LowStock: p.LowStock(), Status: p.Status()}
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta"`
}

type MovementRequest struct {
	Type      string   `json:"type"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type MovementResponse struct {
	models.Movement
	Delta int     `json:"delta"`
	Total float64 `json:"total"`
}

func newMovementResponse(m models.Movement) MovementResponse {
	return MovementResponse{Movement: m, Delta: m.Delta(), Total: m.Total()}
}

type MovementResult struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
	LowStock bool             `json:"low_stock"`
}

type MovementsSearchResult struct {
	Data []MovementResponse `json:"data"`
	Meta Meta               `json:"meta"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type ReportRequest struct {
	Type  string `json:"type"`
	Since string `json:"since,omitempty"`
	Until string `json:"until,omitempty"`
}

type ReportResult struct {
	Path string `json:"path"`
}

type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []apperr.FieldError `json:"fields,omitempty"`
}
