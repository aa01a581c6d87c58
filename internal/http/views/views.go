// Package views renders the HTML pages of the tracker. Pages read through
// Queries and act through Commands; neither touches storage directly.
package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/report"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

//go:embed templates
var templateFS embed.FS

// Commands are the actions a page can trigger.
type Commands struct {
	AddProduct     func(ctx context.Context, in inventory.ProductInput) (models.Product, error)
	EditProduct    func(ctx context.Context, id int, in inventory.ProductInput) (models.Product, error)
	DeleteProduct  func(ctx context.Context, id int) error
	RecordMovement func(ctx context.Context, in inventory.MovementInput) (inventory.MovementResult, error)
	GenerateReport func(ctx context.Context, req report.Request) (string, error)
}

// Queries are the reads a page renders from.
type Queries struct {
	Summary        func(ctx context.Context) (inventory.Summary, error)
	GetProduct     func(ctx context.Context, id int) (models.Product, error)
	ListProducts   func(ctx context.Context, filter repo.ProductFilter) ([]models.Product, int, error)
	ListMovements  func(ctx context.Context, filter repo.MovementFilter) ([]models.Movement, int, error)
	ExportProducts func(ctx context.Context, filter repo.ProductFilter, format inventory.ExportFormat, w io.Writer) error
}

type Views struct {
	cmd    Commands
	query  Queries
	pages  map[string]*template.Template
	logger *slog.Logger
}

var pageNames = []string{"dashboard", "products", "product_form", "movement_form", "movements", "reports"}

func New(cmd Commands, query Queries, logger *slog.Logger) (*Views, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string { return "$" + decimal.NewFromFloat(v).StringFixed(2) },
		"value": func(v decimal.Decimal) string { return "$" + v.StringFixed(2) },
		"date":  func(t time.Time) string { return t.Local().Format("2006-01-02 15:04") },
		"statusClass": func(s models.StockStatus) string {
			switch s {
			case models.StatusOutOfStock:
				return "danger"
			case models.StatusLowStock:
				return "warning"
			default:
				return "ok"
			}
		},
		"add": func(a, b int) int { return a + b },
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	return &Views{cmd: cmd, query: query, pages: pages, logger: logger}, nil
}

// Register mounts the pages on r.
func (v *Views) Register(r chi.Router) {
	r.Get("/", v.dashboard)
	r.Get("/products", v.productList)
	r.Get("/products/export", v.exportProducts)
	r.Get("/products/new", v.newProductForm)
	r.Post("/products/new", v.createProduct)
	r.Get("/products/{id}/edit", v.editProductForm)
	r.Post("/products/{id}/edit", v.updateProduct)
	r.Post("/products/{id}/delete", v.deleteProduct)
	r.Get("/movements", v.movementList)
	r.Get("/movements/new", v.newMovementForm)
	r.Post("/movements/new", v.createMovement)
	r.Get("/reports", v.reportForm)
	r.Post("/reports", v.createReport)
}

type page struct {
	Title  string
	Active string
	Flash  string
	Error  string
	Data   any
}

func (v *Views) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	q := r.URL.Query()
	if p.Flash == "" {
		p.Flash = q.Get("msg")
	}
	if p.Error == "" {
		p.Error = q.Get("err")
	}

	var buf bytes.Buffer
	if err := v.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		v.logger.ErrorContext(r.Context(), "render page", slog.String("page", name), slog.Any("error", err))
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect finishes a POST with a GET of path, carrying a flash message.
func redirect(w http.ResponseWriter, r *http.Request, path, flash string) {
	http.Redirect(w, r, withQuery(path, "msg", flash), http.StatusSeeOther)
}

// redirectErr is redirect for failures that are not tied to a form field.
func (v *Views) redirectErr(w http.ResponseWriter, r *http.Request, path string, err error) {
	if apperr.Is(err, apperr.KindStorage) || apperr.KindOf(err) == apperr.KindUnknown {
		v.logger.ErrorContext(r.Context(), "action failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	http.Redirect(w, r, withQuery(path, "err", apperr.Message(err)), http.StatusSeeOther)
}

func withQuery(path, key, value string) string {
	if value == "" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + url.Values{key: {value}}.Encode()
}

// fieldErrors indexes validation failures by field for inline display.
func fieldErrors(err error) map[string]string {
	fields := apperr.FieldsOf(err)
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Field] = f.Description
	}
	return m
}
