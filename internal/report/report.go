// Package report renders inventory snapshots and transaction histories as
// paginated PDF tables.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/metrics"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

type Type string

const (
	Inventory    Type = "inventory"
	Transactions Type = "transactions"
)

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Inventory, Transactions:
		return t, nil
	}
	return "", apperr.Validation(apperr.FieldError{Field: "type", Description: "must be one of [inventory transactions]"})
}

func (t Type) Title() string {
	if t == Transactions {
		return "Transaction History Report"
	}
	return "Inventory Report"
}

// Request selects the report. Since and Until bound transaction history
// and are ignored by the inventory snapshot.
type Request struct {
	Type  Type       `json:"type"`
	Since *time.Time `json:"since,omitempty"`
	Until *time.Time `json:"until,omitempty"`
}

// Source is the query side of the inventory the reports read from.
type Source interface {
	ListProducts(ctx context.Context, filter repo.ProductFilter) ([]models.Product, int, error)
	ListMovements(ctx context.Context, filter repo.MovementFilter) ([]models.Movement, int, error)
}

type Generator struct {
	source  Source
	dir     string
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Generator)

// WithClock replaces time.Now as the source of the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

func NewGenerator(source Source, dir string, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		source: source,
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes the requested report to the reports directory and
// returns the file path.
func (g *Generator) Generate(ctx context.Context, req Request) (path string, err error) {
	defer func() { g.metrics.ReportGenerated(string(req.Type), err) }()

	typ, err := ParseType(string(req.Type))
	if err != nil {
		return "", err
	}
	req.Type = typ
	if req.Since != nil && req.Until != nil && req.Since.After(*req.Until) {
		return "", apperr.Validation(apperr.FieldError{Field: "since", Description: "must not be after until"})
	}

	now := g.now()
	doc, err := g.render(ctx, req, now)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", apperr.Storage("create reports directory", err)
	}
	path = filepath.Join(g.dir, fmt.Sprintf("%s_report_%s.pdf", req.Type, now.Format("20060102_150405")))
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", apperr.Storage("write report", err)
	}

	g.logger.InfoContext(ctx, "report generated", slog.String("type", string(req.Type)), slog.String("path", path))
	return path, nil
}

func (g *Generator) render(ctx context.Context, req Request, now time.Time) (*fpdf.Fpdf, error) {
	switch req.Type {
	case Transactions:
		movements, _, err := g.source.ListMovements(ctx, repo.MovementFilter{Since: req.Since, Until: req.Until, OldestFirst: true})
		if err != nil {
			return nil, err
		}
		return renderTransactions(movements, req, now)
	default:
		products, _, err := g.source.ListProducts(ctx, repo.ProductFilter{})
		if err != nil {
			return nil, err
		}
		return renderInventory(products, now)
	}
}
