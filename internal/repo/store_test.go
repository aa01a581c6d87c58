package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

func TestWithTxCommits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := seedProduct(t, s, "Nut", 0.05, 10, 0)

	err := s.WithTx(ctx, func(tx Tx) error {
		if _, err := tx.Movements().Log(ctx, models.Movement{ProductID: p.ID, Type: models.MovementIn, Quantity: 5, CreatedAt: time.Now().UTC()}); err != nil {
			return err
		}
		_, err := tx.Products().AdjustQuantity(ctx, p.ID, 5, time.Now())
		return err
	})
	require.NoError(t, err)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Quantity)

	count, err := s.Movements().CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWithTxRollsBackLedgerWrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := seedProduct(t, s, "Washer", 0.02, 10, 0)
	crash := errors.New("crash between ledger write and quantity update")

	err := s.WithTx(ctx, func(tx Tx) error {
		if _, err := tx.Movements().Log(ctx, models.Movement{ProductID: p.ID, Type: models.MovementOut, Quantity: 4, CreatedAt: time.Now().UTC()}); err != nil {
			return err
		}
		return crash
	})
	assert.ErrorIs(t, err, crash)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	count, err := s.Movements().CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
