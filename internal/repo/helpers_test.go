package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/config"
	"github.com/rogerio-castellano/stockroom/internal/db"
	"github.com/rogerio-castellano/stockroom/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(context.Background(), config.Database{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "inventory.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(database))

	return NewStore(database)
}

func seedProduct(t *testing.T, s *Store, name string, price float64, qty, minQty int) models.Product {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p, err := s.Products().Create(context.Background(), models.Product{
		Name:        name,
		Price:       price,
		Quantity:    qty,
		MinQuantity: minQty,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }
