package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rogerio-castellano/stockroom/internal/config"
	"github.com/rogerio-castellano/stockroom/internal/db"
	api "github.com/rogerio-castellano/stockroom/internal/http"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/log"
	"github.com/rogerio-castellano/stockroom/internal/metrics"
	"github.com/rogerio-castellano/stockroom/internal/report"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

// @title Stockroom API
// @version 1.0
// @description REST API for managing inventory products, stock movements and reports.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running stockroom: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	svc := inventory.NewService(repo.NewStore(database), logger, inventory.WithMetrics(m))
	gen := report.NewGenerator(svc, cfg.Reports.Dir, logger, report.WithMetrics(m))

	handler, err := api.NewRouter(api.Deps{
		Inventory: svc,
		Reports:   gen,
		Auth:      cfg.Auth,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
		Metrics:   m,
		Gatherer:  registry,
	})
	if err != nil {
		return fmt.Errorf("error building router: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	logger.InfoContext(ctx, "stockroom started",
		slog.String("address", "http://"+cfg.HTTP.Addr),
		slog.String("database", cfg.Database.Driver),
		slog.Bool("api_auth", cfg.Auth.Enabled()),
	)

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("stockroom is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}
	logger.Info("stockroom stopped")
	return nil
}
