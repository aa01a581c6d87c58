package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

const importCSV = `name,price,quantity,threshold,category
Widget,2.50,100,10,Parts
Gadget,10,0,0,
,1,1,1,
Bolt,abc,1,1,
Nut,0.05,-4,0,
`

func TestImportProducts(t *testing.T) {
	svc := newTestService(t, newTestStore(t))
	ctx := context.Background()

	res, err := svc.ImportProducts(ctx, strings.NewReader(importCSV), ImportSkip)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, 4, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Message, "name")
	assert.Equal(t, 5, res.Errors[1].Row)
	assert.Contains(t, res.Errors[1].Message, "invalid price")
	assert.Equal(t, 6, res.Errors[2].Row)
	assert.Contains(t, res.Errors[2].Message, "quantity")

	products, total, err := svc.ListProducts(ctx, repo.ProductFilter{Name: "widget"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, 10, products[0].MinQuantity)
	assert.Equal(t, "Parts", products[0].Category)
}

func TestImportProductsDuplicates(t *testing.T) {
	svc := newTestService(t, newTestStore(t))
	ctx := context.Background()
	existing := mustAdd(t, svc, "Widget", 1, 1, 1)

	csv := "name,price,quantity,min_quantity\nWidget,3,30,5\n"

	res, err := svc.ImportProducts(ctx, strings.NewReader(csv), ImportSkip)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "already exists")

	got, err := svc.GetProduct(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)

	res, err = svc.ImportProducts(ctx, strings.NewReader(csv), ParseImportMode("UPDATE"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Empty(t, res.Errors)

	got, err = svc.GetProduct(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.Price)
	assert.Equal(t, 30, got.Quantity)
	assert.Equal(t, 5, got.MinQuantity)
}

func TestImportProductsRejectsNonFinitePrices(t *testing.T) {
	svc := newTestService(t, newTestStore(t))
	ctx := context.Background()

	csv := "name,price,quantity\nGadget,inf,2\nGizmo,NaN,1\nWidget,-Infinity,3\n"
	res, err := svc.ImportProducts(ctx, strings.NewReader(csv), ImportSkip)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	require.Len(t, res.Errors, 3)
	for _, rowErr := range res.Errors {
		assert.Contains(t, rowErr.Message, "price")
	}

	summary, err := svc.GetDashboardSummary(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalProducts)
}

func TestImportProductsBadHeader(t *testing.T) {
	svc := newTestService(t, newTestStore(t))

	_, err := svc.ImportProducts(context.Background(), strings.NewReader("title,cost\nWidget,1\n"), ImportSkip)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, []string{"name", "price", "quantity"}, fieldNames(err))

	_, err = svc.ImportProducts(context.Background(), strings.NewReader(""), ImportSkip)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestParseImportMode(t *testing.T) {
	assert.Equal(t, ImportUpdate, ParseImportMode(" update "))
	assert.Equal(t, ImportSkip, ParseImportMode("skip"))
	assert.Equal(t, ImportSkip, ParseImportMode("overwrite"))
}
