package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

var clock = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

type fakeSource struct {
	products       []models.Product
	movements      []models.Movement
	err            error
	lastMovementMF repo.MovementFilter
}

func (f *fakeSource) ListProducts(context.Context, repo.ProductFilter) ([]models.Product, int, error) {
	return f.products, len(f.products), f.err
}

func (f *fakeSource) ListMovements(_ context.Context, mf repo.MovementFilter) ([]models.Movement, int, error) {
	f.lastMovementMF = mf
	return f.movements, len(f.movements), f.err
}

func newTestGenerator(src Source, dir string) *Generator {
	return NewGenerator(src, dir, slog.New(slog.NewTextHandler(io.Discard, nil)), WithClock(func() time.Time { return clock }))
}

func sampleSource(products int) *fakeSource {
	src := &fakeSource{}
	for i := 1; i <= products; i++ {
		src.products = append(src.products, models.Product{
			ID:          i,
			Name:        fmt.Sprintf("Product %03d with a rather long descriptive name", i),
			Category:    "Café",
			Price:       float64(i) + 0.25,
			Quantity:    i % 7,
			MinQuantity: 3,
		})
	}
	src.movements = []models.Movement{
		{ID: 1, ProductID: 1, ProductName: "Widget", Type: models.MovementIn, Quantity: 100, UnitPrice: 2.5, CreatedAt: clock.Add(-48 * time.Hour)},
		{ID: 2, ProductID: 1, ProductName: "Widget", Type: models.MovementOut, Quantity: 95, UnitPrice: 2.5, CreatedAt: clock.Add(-24 * time.Hour)},
	}
	return src
}

func TestGenerateInventoryReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	g := newTestGenerator(sampleSource(5), dir)

	path, err := g.Generate(context.Background(), Request{Type: Inventory})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inventory_report_20260314_150926.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateTransactionReport(t *testing.T) {
	src := sampleSource(0)
	g := newTestGenerator(src, t.TempDir())
	since := clock.Add(-72 * time.Hour)

	path, err := g.Generate(context.Background(), Request{Type: Transactions, Since: &since})
	require.NoError(t, err)
	assert.Equal(t, "transactions_report_20260314_150926.pdf", filepath.Base(path))
	assert.Equal(t, &since, src.lastMovementMF.Since)
	assert.True(t, src.lastMovementMF.OldestFirst)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateNormalizesType(t *testing.T) {
	src := sampleSource(0)
	g := newTestGenerator(src, t.TempDir())

	path, err := g.Generate(context.Background(), Request{Type: " Transactions"})
	require.NoError(t, err)
	assert.Equal(t, "transactions_report_20260314_150926.pdf", filepath.Base(path))
	assert.True(t, src.lastMovementMF.OldestFirst, "transaction history is read from movements")
}

func TestReportsAreDeterministic(t *testing.T) {
	for _, typ := range []Type{Inventory, Transactions} {
		t.Run(string(typ), func(t *testing.T) {
			first, err := newTestGenerator(sampleSource(40), t.TempDir()).Generate(context.Background(), Request{Type: typ})
			require.NoError(t, err)
			second, err := newTestGenerator(sampleSource(40), t.TempDir()).Generate(context.Background(), Request{Type: typ})
			require.NoError(t, err)

			a, err := os.ReadFile(first)
			require.NoError(t, err)
			b, err := os.ReadFile(second)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		})
	}
}

func TestInventoryReportPaginates(t *testing.T) {
	doc, err := renderInventory(sampleSource(150).products, clock)
	require.NoError(t, err)
	assert.Greater(t, doc.PageCount(), 1)

	doc, err = renderInventory(nil, clock)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.PageCount())
}

func TestGenerateRejectsBadRequests(t *testing.T) {
	g := newTestGenerator(sampleSource(1), t.TempDir())
	since := clock
	until := clock.Add(-time.Hour)

	_, err := g.Generate(context.Background(), Request{Type: "stock"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = g.Generate(context.Background(), Request{Type: Transactions, Since: &since, Until: &until})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGenerateWriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	g := newTestGenerator(sampleSource(1), filepath.Join(blocker, "reports"))
	_, err := g.Generate(context.Background(), Request{Type: Inventory})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStorage))
}

func TestGenerateSourceFailure(t *testing.T) {
	src := &fakeSource{err: apperr.Storage("list products", errors.New("database is locked"))}
	g := newTestGenerator(src, t.TempDir())

	_, err := g.Generate(context.Background(), Request{Type: Inventory})
	assert.True(t, apperr.Is(err, apperr.KindStorage))
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(" Transactions ")
	require.NoError(t, err)
	assert.Equal(t, Transactions, typ)

	_, err = ParseType("")
	assert.Error(t, err)
}

func TestPeriod(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Period: 2026-01-01 to 2026-01-31", period(Request{Since: &since, Until: &until}))
	assert.Equal(t, "Period: from 2026-01-01", period(Request{Since: &since}))
	assert.Equal(t, "Period: until 2026-01-31", period(Request{Until: &until}))
	assert.Equal(t, "Period: all transactions", period(Request{}))
}
