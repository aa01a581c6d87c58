package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/config"
)

func TestOpenCreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inventory.db")

	database, err := Open(context.Background(), config.Database{Driver: DriverSQLite, Path: path})
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	// second run is a no-op
	require.NoError(t, Migrate(database))

	var tables []string
	err = database.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('products', 'movements') ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"movements", "products"}, tables)
	assert.FileExists(t, path)
}

func TestForeignKeysEnforced(t *testing.T) {
	database, err := Open(context.Background(), config.Database{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "fk.db")})
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, Migrate(database))

	_, err = database.Exec(`INSERT INTO movements (product_id, type, quantity, created_at) VALUES (42, 'IN', 1, CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Database{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
