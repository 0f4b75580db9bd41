package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joyeria-system/internal/database/models"
	"joyeria-system/internal/seed"
	"joyeria-system/internal/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunPopulatesEmptyStore(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, seed.Run(ctx, mem, discard()))

	categories, err := mem.CountCategories(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, categories)

	materials, err := mem.CountMaterials(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, materials)

	productCount, err := mem.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, productCount)

	// Products cross-reference the freshly inserted categories/materials.
	list, err := mem.ListProducts(ctx)
	require.NoError(t, err)
	for _, p := range list {
		assert.NotNil(t, p.Category, "product %q has dangling category", p.Name)
		assert.NotNil(t, p.Material, "product %q has dangling material", p.Name)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, seed.Run(ctx, mem, discard()))
	before, err := mem.CountCategories(ctx)
	require.NoError(t, err)

	require.NoError(t, seed.Run(ctx, mem, discard()))
	after, err := mem.CountCategories(ctx)
	require.NoError(t, err)

	assert.Equal(t, before, after)

	productCount, err := mem.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, productCount)
}

func TestRunSkipsPartiallySeededStore(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.CreateCategories(ctx, []*models.Category{{Name: "Existing"}}))

	require.NoError(t, seed.Run(ctx, mem, discard()))

	categories, err := mem.CountCategories(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, categories)

	productCount, err := mem.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, productCount)
}

func TestSeedDataIsValid(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, seed.Run(ctx, mem, discard()))

	list, err := mem.ListProducts(ctx)
	require.NoError(t, err)
	stocks := map[int]bool{}
	for _, p := range list {
		product := p
		require.NoError(t, product.Validate())
		stocks[p.Stock] = true
	}
	// The fixed sample stocks drive the dashboard low-stock example.
	for _, want := range []int{5, 8, 3, 12, 2} {
		assert.True(t, stocks[want], "missing product with stock %d", want)
	}
}
