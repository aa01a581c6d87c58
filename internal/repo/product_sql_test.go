package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

func TestProductRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 9, 30, 0, 123456000, time.UTC)

	created, err := s.Products().Create(ctx, models.Product{
		Name:        "Widget",
		Description: "blue widget",
		Category:    "Parts",
		Price:       2.50,
		Quantity:    100,
		MinQuantity: 10,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := s.Products().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, "blue widget", got.Description)
	assert.Equal(t, "Parts", got.Category)
	assert.Equal(t, 2.50, got.Price)
	assert.Equal(t, 100, got.Quantity)
	assert.Equal(t, 10, got.MinQuantity)
	assert.True(t, now.Equal(got.CreatedAt), "created_at %v != %v", got.CreatedAt, now)
}

func TestProductNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Products().GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = s.Products().Update(ctx, models.Product{ID: 999, Name: "ghost"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, s.Products().Delete(ctx, 999), ErrProductNotFound)

	_, err = s.Products().AdjustQuantity(ctx, 999, 1, time.Now())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAdjustQuantityNeverNegative(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := seedProduct(t, s, "Bolt", 0.10, 5, 0)

	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	updated, err := s.Products().AdjustQuantity(ctx, p.ID, -5, at)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.True(t, at.Equal(updated.UpdatedAt), "updated_at %v != %v", updated.UpdatedAt, at)

	_, err = s.Products().AdjustQuantity(ctx, p.ID, -1, at.Add(time.Minute))
	assert.ErrorIs(t, err, ErrInvalidQuantityChange)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestFilterProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedProduct(t, s, "Keyboard", 40, 10, 5)
	seedProduct(t, s, "Mouse", 20, 1, 5)
	seedProduct(t, s, "Monitor", 150, 2, 3)
	seedProduct(t, s, "Mousepad", 5, 50, 0)

	tests := []struct {
		name      string
		filter    ProductFilter
		wantNames []string
		wantTotal int
	}{
		{"all", ProductFilter{}, []string{"Keyboard", "Mouse", "Monitor", "Mousepad"}, 4},
		{"name is case insensitive", ProductFilter{Name: "MOUSE"}, []string{"Mouse", "Mousepad"}, 2},
		{"price range", ProductFilter{MinPrice: ptr(10.0), MaxPrice: ptr(50.0)}, []string{"Keyboard", "Mouse"}, 2},
		{"quantity range", ProductFilter{MinQty: ptr(2), MaxQty: ptr(10)}, []string{"Keyboard", "Monitor"}, 2},
		{"low stock only", ProductFilter{LowStockOnly: true}, []string{"Mouse", "Monitor"}, 2},
		{"paginated", ProductFilter{Limit: ptr(2), Offset: ptr(1)}, []string{"Mouse", "Monitor"}, 4},
		{"offset without limit", ProductFilter{Offset: ptr(3)}, []string{"Mousepad"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, total, err := s.Products().Filter(ctx, tt.filter)
			require.NoError(t, err)

			names := make([]string, len(products))
			for i, p := range products {
				names[i] = p.Name
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestSearchMatchesDescriptionAndCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	for _, p := range []models.Product{
		{Name: "Widget", Description: "Standard steel widget", Category: "Parts"},
		{Name: "Cable", Description: "USB-C", Category: "Electronics"},
		{Name: "Steel Ruler", Category: "Tools"},
	} {
		p.CreatedAt, p.UpdatedAt = now, now
		_, err := s.Products().Create(ctx, p)
		require.NoError(t, err)
	}

	tests := []struct {
		search    string
		wantNames []string
	}{
		{"steel", []string{"Widget", "Steel Ruler"}},
		{"ELECTRON", []string{"Cable"}},
		{"cable", []string{"Cable"}},
		{"nothing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			products, total, err := s.Products().Filter(ctx, ProductFilter{Search: tt.search})
			require.NoError(t, err)

			names := make([]string, len(products))
			for i, p := range products {
				names[i] = p.Name
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, len(tt.wantNames), total)
		})
	}
}

func TestGetByName(t *testing.T) {
	s := newTestStore(t)
	p := seedProduct(t, s, "Cable", 3, 3, 1)

	got, err := s.Products().GetByName(context.Background(), "Cable")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = s.Products().GetByName(context.Background(), "cable tie")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
