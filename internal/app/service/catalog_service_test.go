package service

import (
	"testing"

	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/internal/app/repository"
	"github.com/rcalhoun/summit-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogServiceTest(t *testing.T) (CatalogService, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	catalogService := NewCatalogService(repository.NewCatalogRepository(testDB))

	product := &model.Product{
		Name:     "Daily Greens",
		Category: model.CategorySupplement,
	}
	require.NoError(t, catalogService.CreateProduct(product))

	return catalogService, product
}

func TestCatalogService_CreateVariant_WithPrices(t *testing.T) {
	catalogService, product := setupCatalogServiceTest(t)

	variant := &model.Variant{
		ProductID:   product.ID,
		SKU:         "GREENS-30",
		CatalogCode: "default",
		OptionLabel: "30 servings",
	}
	err := catalogService.CreateVariant(variant, []VariantPriceInput{
		{RoleCode: "RETAIL", Price: 39.99},
		{RoleCode: "DISTRIBUTOR", Price: 29.99},
	})
	require.NoError(t, err)

	found, err := catalogService.LookupVariantForRole("DISTRIBUTOR", variant.ID, "default")
	require.NoError(t, err)
	require.Len(t, found.Prices, 1)
	assert.Equal(t, 29.99, found.Prices[0].Price)
}

func TestCatalogService_CreateVariant_ProductNotFound(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	err := catalogService.CreateVariant(&model.Variant{
		ProductID:   9999,
		SKU:         "ORPHAN",
		CatalogCode: "default",
	}, nil)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_LookupVariantForRole_RequiresRole(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	_, err := catalogService.LookupVariantForRole("", 1, "default")

	assert.ErrorIs(t, err, ErrInvalidRoleCode)
}

func TestCatalogService_LookupVariantForRole_NotFound(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	_, err := catalogService.LookupVariantForRole("RETAIL", 9999, "default")

	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestCatalogService_GetProductByID(t *testing.T) {
	catalogService, product := setupCatalogServiceTest(t)

	found, err := catalogService.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, found.Name)

	_, err = catalogService.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_ListProducts(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	require.NoError(t, catalogService.CreateProduct(&model.Product{
		Name:     "Logo Tee",
		Category: model.CategoryApparel,
	}))

	products, err := catalogService.ListProducts("")
	require.NoError(t, err)
	assert.Len(t, products, 2)

	apparel, err := catalogService.ListProducts(string(model.CategoryApparel))
	require.NoError(t, err)
	require.Len(t, apparel, 1)
	assert.Equal(t, "Logo Tee", apparel[0].Name)
}
