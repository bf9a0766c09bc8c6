package postgres_test

import (
	"context"
	"testing"

	"github.com/mtran/inventory-web/internal/repository"
	"github.com/mtran/inventory-web/internal/repository/postgres"
	"github.com/mtran/inventory-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_ListFilters(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewProductRepository(testDB.DB)
	ctx := context.Background()

	category := testutil.NewCategoryBuilder().Build(t, testDB.DB)
	supplier := testutil.NewSupplierBuilder().Build(t, testDB.DB)
	otherSupplier := testutil.NewSupplierBuilder().Build(t, testDB.DB)

	testutil.NewProductBuilder().WithName("Desk Lamp").WithSKU("LMP-01").
		WithCategory(category).WithSupplier(supplier).Build(t, testDB.DB)
	testutil.NewProductBuilder().WithName("Desk Chair").WithSKU("CHR-01").
		WithCategory(category).WithSupplier(otherSupplier).Build(t, testDB.DB)

	t.Run("case-insensitive name search", func(t *testing.T) {
		products, total, err := repo.List(ctx, repository.ProductFilter{Page: 1, Limit: 10, Search: "desk"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, products, 2)
	})

	t.Run("supplier filter", func(t *testing.T) {
		products, total, err := repo.List(ctx, repository.ProductFilter{Page: 1, Limit: 10, SupplierID: &otherSupplier.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, "Desk Chair", products[0].Name)
	})

	t.Run("associations preloaded", func(t *testing.T) {
		products, _, err := repo.List(ctx, repository.ProductFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.NotEmpty(t, products)
		require.NotNil(t, products[0].Category)
		require.NotNil(t, products[0].Supplier)
	})

	t.Run("counts by category and supplier", func(t *testing.T) {
		count, err := repo.CountByCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.CountBySupplier(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestProductRepository_GetBySKU(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewProductRepository(testDB.DB)
	ctx := context.Background()

	created := testutil.NewProductBuilder().WithSKU("UNI-42").Build(t, testDB.DB)

	got, err := repo.GetBySKU(ctx, "UNI-42")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetBySKU(ctx, "NOPE-00")
	assert.Error(t, err)
}
