package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/rogerio-castellano/stockroom/internal/auth"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/report"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

// Inventory is the controller the API drives.
type Inventory interface {
	AddProduct(ctx context.Context, in inventory.ProductInput) (models.Product, error)
	EditProduct(ctx context.Context, id int, in inventory.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	GetProduct(ctx context.Context, id int) (models.Product, error)
	ListProducts(ctx context.Context, filter repo.ProductFilter) ([]models.Product, int, error)
	ExportProducts(ctx context.Context, filter repo.ProductFilter, format inventory.ExportFormat, w io.Writer) error
	RecordMovement(ctx context.Context, in inventory.MovementInput) (inventory.MovementResult, error)
	ListMovements(ctx context.Context, filter repo.MovementFilter) ([]models.Movement, int, error)
	ExportMovements(ctx context.Context, filter repo.MovementFilter, format inventory.ExportFormat, w io.Writer) error
	ImportProducts(ctx context.Context, r io.Reader, mode inventory.ImportMode) (inventory.ImportResult, error)
	GetDashboardSummary(ctx context.Context) (inventory.Summary, error)
}

type ReportGenerator interface {
	Generate(ctx context.Context, req report.Request) (string, error)
}

// Handler serves the JSON API.
type Handler struct {
	inventory   Inventory
	reports     ReportGenerator
	issuer      *auth.Issuer
	credentials auth.Credentials
	logger      *slog.Logger
}

func New(inv Inventory, reports ReportGenerator, issuer *auth.Issuer, credentials auth.Credentials, logger *slog.Logger) *Handler {
	return &Handler{
		inventory:   inv,
		reports:     reports,
		issuer:      issuer,
		credentials: credentials,
		logger:      logger,
	}
}
