package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rogerio-castellano/stockroom/internal/auth"
	"github.com/rogerio-castellano/stockroom/internal/config"
	"github.com/rogerio-castellano/stockroom/internal/http/handlers"
	mw "github.com/rogerio-castellano/stockroom/internal/http/middleware"
	rl "github.com/rogerio-castellano/stockroom/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stockroom/internal/http/views"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/metrics"
	"github.com/rogerio-castellano/stockroom/internal/report"
)

// Deps is everything the router wires into pages and API handlers.
type Deps struct {
	Inventory *inventory.Service
	Reports   *report.Generator
	Auth      config.Auth
	RateLimit config.RateLimit
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
}

// NewRouter serves the HTML pages at the root, the JSON API under /api and
// Prometheus metrics at /metrics.
func NewRouter(d Deps) (http.Handler, error) {
	page, err := views.New(views.Commands{
		AddProduct:     d.Inventory.AddProduct,
		EditProduct:    d.Inventory.EditProduct,
		DeleteProduct:  d.Inventory.DeleteProduct,
		RecordMovement: d.Inventory.RecordMovement,
		GenerateReport: d.Reports.Generate,
	}, views.Queries{
		Summary:        d.Inventory.GetDashboardSummary,
		GetProduct:     d.Inventory.GetProduct,
		ListProducts:   d.Inventory.ListProducts,
		ListMovements:  d.Inventory.ListMovements,
		ExportProducts: d.Inventory.ExportProducts,
	}, d.Logger)
	if err != nil {
		return nil, err
	}

	issuer := auth.NewIssuer(d.Auth.JWTSecret, d.Auth.TokenTTL)
	api := handlers.New(d.Inventory, d.Reports, issuer, auth.Credentials{
		Username:     d.Auth.Username,
		PasswordHash: d.Auth.PasswordHash,
	}, d.Logger)
	limiter := rl.New(d.RateLimit.RPS, d.RateLimit.Burst)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger(d.Logger, d.Metrics))

	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	page.Register(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)

		if d.Auth.Enabled() {
			r.Post("/login", api.Login)
		}

		r.Group(func(r chi.Router) {
			if d.Auth.Enabled() {
				r.Use(mw.Auth(issuer))
			}

			r.Get("/products", api.GetProducts)
			r.Post("/products", api.CreateProduct)
			r.Get("/products/search", api.SearchProducts)
			r.Get("/products/export", api.ExportProducts)
			r.Post("/products/import", api.ImportProducts)
			r.Get("/products/{id}", api.GetProductByID)
			r.Put("/products/{id}", api.UpdateProduct)
			r.Delete("/products/{id}", api.DeleteProduct)
			r.Post("/products/{id}/movements", api.RecordMovement)
			r.Get("/products/{id}/movements", api.GetMovements)
			r.Get("/products/{id}/movements/export", api.ExportMovements)
			r.Get("/metrics/dashboard", api.GetDashboardMetrics)
			r.Post("/reports", api.GenerateReport)
		})
	})

	return r, nil
}
