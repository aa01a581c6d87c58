package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/config"
	"github.com/rogerio-castellano/stockroom/internal/db"
	"github.com/rogerio-castellano/stockroom/internal/metrics"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestStore(t *testing.T) *repo.Store {
	t.Helper()

	database, err := db.Open(context.Background(), config.Database{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "inventory.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(database))

	return repo.NewStore(database)
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, logger,
		WithClock(func() time.Time { return fixedNow }),
		WithMetrics(metrics.New(prometheus.NewRegistry())),
	)
}

func mustAdd(t *testing.T, svc *Service, name string, price float64, qty, minQty int) models.Product {
	t.Helper()

	p, err := svc.AddProduct(context.Background(), ProductInput{
		Name:        name,
		Price:       price,
		Quantity:    &qty,
		MinQuantity: minQty,
	})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

// brokenStore fails every quantity update made inside a transaction,
// after the ledger entry has been written.
type brokenStore struct {
	*repo.Store
}

func (s brokenStore) WithTx(ctx context.Context, txFunc func(repo.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx repo.Tx) error {
		return txFunc(brokenTx{tx})
	})
}

type brokenTx struct {
	repo.Tx
}

func (t brokenTx) Products() repo.ProductRepository {
	return brokenProducts{t.Tx.Products()}
}

type brokenProducts struct {
	repo.ProductRepository
}

func (brokenProducts) AdjustQuantity(context.Context, int, int, time.Time) (models.Product, error) {
	return models.Product{}, errors.New("disk I/O error")
}
