package service

import (
	"context"
	"testing"
	"time"

	"github.com/rcalhoun/summit-backend/config"
	"github.com/rcalhoun/summit-backend/internal/app/cache"
	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/internal/app/repository"
	"github.com/rcalhoun/summit-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *cache.MemoryCartStore, *model.User, *model.Variant, *model.Variant, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	store := cache.NewMemoryCartStore(time.Hour)
	catalogRepo := repository.NewCatalogRepository(testDB)
	cfg := config.ShoppingCartConfig{
		DefaultCatalogCode: "default",
		DefaultRoleCode:    "RETAIL",
		CartTTL:            time.Hour,
	}
	cartService := NewCartService(store, catalogRepo, cfg)

	// Create test user
	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		RoleCode:     model.RoleRetail,
	}
	testDB.Create(user)

	// Create test product with two variants: one priced for everyone,
	// one priced for distributors only
	product := &model.Product{
		Name:     "Daily Greens",
		Category: model.CategorySupplement,
	}
	testDB.Create(product)

	retailVariant := &model.Variant{
		ProductID:   product.ID,
		SKU:         "GREENS-30",
		CatalogCode: "default",
		OptionLabel: "30 servings",
	}
	testDB.Create(retailVariant)
	testDB.Create(&model.VariantPrice{VariantID: retailVariant.ID, RoleCode: "RETAIL", Price: 39.99})
	testDB.Create(&model.VariantPrice{VariantID: retailVariant.ID, RoleCode: "DISTRIBUTOR", Price: 29.99})

	distributorVariant := &model.Variant{
		ProductID:   product.ID,
		SKU:         "GREENS-KIT",
		CatalogCode: "default",
		OptionLabel: "Starter kit",
	}
	testDB.Create(distributorVariant)
	testDB.Create(&model.VariantPrice{VariantID: distributorVariant.ID, RoleCode: "DISTRIBUTOR", Price: 99.99})

	return cartService, store, user, retailVariant, distributorVariant, testDB
}

func TestCartService_GetCart_Empty(t *testing.T) {
	cartService, _, user, _, _, _ := setupCartServiceTest(t)

	cart, err := cartService.GetCart(context.Background(), Principal{UserID: user.ID})

	assert.NoError(t, err)
	require.NotNil(t, cart)
	assert.NotEmpty(t, cart.ID)
	assert.NotNil(t, cart.LineItems)
	assert.Len(t, cart.LineItems, 0)
}

func TestCartService_GetCart_NoPrincipal(t *testing.T) {
	cartService, _, _, _, _, _ := setupCartServiceTest(t)

	cart, err := cartService.GetCart(context.Background(), Principal{})

	assert.ErrorIs(t, err, ErrInvalidVisitorID)
	assert.Nil(t, cart)
}

func TestCartService_ReplaceCart_RoundTrip(t *testing.T) {
	cartService, _, user, variant, _, _ := setupCartServiceTest(t)
	p := Principal{UserID: user.ID}

	result, err := cartService.ReplaceCart(context.Background(), p, &model.Cart{
		LineItems: []model.LineItem{
			{VariantID: variant.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, 2, result.LineItems[0].Quantity)

	cart, err := cartService.GetCart(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, cart.LineItems, 1)
	assert.Equal(t, variant.ID, cart.LineItems[0].VariantID)
	assert.Equal(t, 2, cart.LineItems[0].Quantity)
}

func TestCartService_ReplaceCart_DropsUnknownVariant(t *testing.T) {
	cartService, _, user, variant, _, _ := setupCartServiceTest(t)

	result, err := cartService.ReplaceCart(context.Background(), Principal{UserID: user.ID}, &model.Cart{
		LineItems: []model.LineItem{
			{VariantID: variant.ID, Quantity: 1},
			{VariantID: 9999, Quantity: 1},
		},
	})

	// The unknown variant disappears without an error
	require.NoError(t, err)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, variant.ID, result.LineItems[0].VariantID)
}

func TestCartService_ReplaceCart_DropsUnpricedVariant(t *testing.T) {
	cartService, _, user, _, distributorVariant, _ := setupCartServiceTest(t)

	// A retail user cannot buy the distributor-only variant
	result, err := cartService.ReplaceCart(context.Background(), Principal{UserID: user.ID}, &model.Cart{
		LineItems: []model.LineItem{
			{VariantID: distributorVariant.ID, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Len(t, result.LineItems, 0)
}

func TestCartService_ReplaceCart_DropsSoftDeletedVariant(t *testing.T) {
	cartService, _, user, variant, _, testDB := setupCartServiceTest(t)

	require.NoError(t, testDB.Delete(variant).Error)

	result, err := cartService.ReplaceCart(context.Background(), Principal{UserID: user.ID}, &model.Cart{
		LineItems: []model.LineItem{
			{VariantID: variant.ID, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Len(t, result.LineItems, 0)
}

func TestCartService_ReplaceCart_FillsDefaultCatalogCode(t *testing.T) {
	cartService, _, user, variant, _, _ := setupCartServiceTest(t)

	result, err := cartService.ReplaceCart(context.Background(), Principal{UserID: user.ID}, &model.Cart{
		LineItems: []model.LineItem{
			{VariantID: variant.ID, Quantity: 1},
		},
	})

	require.NoError(t, err)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, "default", result.LineItems[0].CatalogCode)
}

func TestCartService_AddLineItems_Accumulates(t *testing.T) {
	cartService, _, user, variant, _, _ := setupCartServiceTest(t)
	p := Principal{UserID: user.ID}

	_, err := cartService.AddLineItems(context.Background(), p, []model.LineItem{
		{VariantID: variant.ID, Quantity: 2},
	})
	require.NoError(t, err)

	result, err := cartService.AddLineItems(context.Background(), p, []model.LineItem{
		{VariantID: variant.ID, Quantity: 3},
	})
	require.NoError(t, err)

	require.Len(t, result.LineItems, 1)
	assert.Equal(t, 5, result.LineItems[0].Quantity)
}

func TestCartService_AddLineItems_NegativeDeltaClampsToZero(t *testing.T) {
	cartService, _, user, variant, _, _ := setupCartServiceTest(t)
	p := Principal{UserID: user.ID}

	_, err := cartService.AddLineItems(context.Background(), p, []model.LineItem{
		{VariantID: variant.ID, Quantity: 2},
	})
	require.NoError(t, err)

	result, err := cartService.AddLineItems(context.Background(), p, []model.LineItem{
		{VariantID: variant.ID, Quantity: -10},
	})
	require.NoError(t, err)

	// Zero-quantity entries stay in the cart
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, 0, result.LineItems[0].Quantity)
}

func TestCartService_SetLineItems_ReplacesAndClamps(t *testing.T) {
	cartService, _, user, variant, _, _ := setupCartServiceTest(t)
	p := Principal{UserID: user.ID}

	_, err := cartService.AddLineItems(context.Background(), p, []model.LineItem{
		{VariantID: variant.ID, Quantity: 5},
	})
	require.NoError(t, err)

	result, err := cartService.SetLineItems(context.Background(), p, []model.LineItem{
		{VariantID: variant.ID, Quantity: -1},
	})
	require.NoError(t, err)

	require.Len(t, result.LineItems, 1)
	assert.Equal(t, 0, result.LineItems[0].Quantity)
}

func TestCartService_DeleteCart(t *testing.T) {
	cartService, _, user, variant, _, _ := setupCartServiceTest(t)
	p := Principal{UserID: user.ID}

	_, err := cartService.AddLineItems(context.Background(), p, []model.LineItem{
		{VariantID: variant.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.NoError(t, cartService.DeleteCart(context.Background(), p))

	cart, err := cartService.GetCart(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, cart.LineItems, 0)
}

func TestCartService_VisitorCart_UsesRequestRole(t *testing.T) {
	cartService, _, _, _, distributorVariant, _ := setupCartServiceTest(t)
	p := Principal{VisitorID: "visitor-1", RoleCode: "DISTRIBUTOR"}

	result, err := cartService.AddLineItems(context.Background(), p, []model.LineItem{
		{VariantID: distributorVariant.ID, Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, "DISTRIBUTOR", result.RoleCode)
}

func TestCartService_VisitorCart_ItemRoleOverridesCartRole(t *testing.T) {
	cartService, _, _, _, distributorVariant, _ := setupCartServiceTest(t)
	p := Principal{VisitorID: "visitor-2"}

	// Cart-level role would fail the lookup; the item-level role wins
	result, err := cartService.AddLineItems(context.Background(), p, []model.LineItem{
		{VariantID: distributorVariant.ID, Quantity: 1, RoleCode: "DISTRIBUTOR"},
	})

	require.NoError(t, err)
	require.Len(t, result.LineItems, 1)
}

func TestCartService_VisitorCart_FallsBackToDefaultRole(t *testing.T) {
	cartService, _, _, variant, distributorVariant, _ := setupCartServiceTest(t)
	p := Principal{VisitorID: "visitor-3"}

	// No role anywhere on the request: the configured default (RETAIL)
	// applies, so only the retail-priced variant survives
	result, err := cartService.AddLineItems(context.Background(), p, []model.LineItem{
		{VariantID: variant.ID, Quantity: 1},
		{VariantID: distributorVariant.ID, Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, variant.ID, result.LineItems[0].VariantID)
}

func TestCartService_VisitorCart_NoRoleBasisFails(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	store := cache.NewMemoryCartStore(time.Hour)
	catalogRepo := repository.NewCatalogRepository(testDB)
	// No default role configured
	cartService := NewCartService(store, catalogRepo, config.ShoppingCartConfig{
		DefaultCatalogCode: "default",
		CartTTL:            time.Hour,
	})

	result, err := cartService.AddLineItems(context.Background(), Principal{VisitorID: "visitor-4"}, []model.LineItem{
		{VariantID: 1, Quantity: 1},
	})

	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Nil(t, result)
}

func TestCartService_UserAndVisitorKeysAreSeparate(t *testing.T) {
	cartService, _, user, variant, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddLineItems(context.Background(), Principal{UserID: user.ID}, []model.LineItem{
		{VariantID: variant.ID, Quantity: 2},
	})
	require.NoError(t, err)

	// A visitor whose raw identifier collides with the user ID sees its
	// own empty cart
	visitorCart, err := cartService.GetCart(context.Background(), Principal{VisitorID: "1"})
	require.NoError(t, err)
	assert.Len(t, visitorCart.LineItems, 0)
}

func TestCartService_MergeVisitorCart(t *testing.T) {
	cartService, store, user, variant, _, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddLineItems(ctx, Principal{UserID: user.ID}, []model.LineItem{
		{VariantID: variant.ID, Quantity: 1},
	})
	require.NoError(t, err)

	visitorID := "visitor-merge"
	_, err = cartService.AddLineItems(ctx, Principal{VisitorID: visitorID, RoleCode: "RETAIL"}, []model.LineItem{
		{VariantID: variant.ID, Quantity: 2},
	})
	require.NoError(t, err)

	merged, err := cartService.MergeVisitorCart(ctx, visitorID, Principal{UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, merged.LineItems, 1)
	assert.Equal(t, 3, merged.LineItems[0].Quantity)

	// The visitor entry is gone after the merge
	visitorCart, err := store.Get(ctx, cache.KeyForVisitor(visitorID))
	require.NoError(t, err)
	assert.Nil(t, visitorCart)
}

func TestCartService_MergeVisitorCart_EmptyVisitorCart(t *testing.T) {
	cartService, _, user, variant, _, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddLineItems(ctx, Principal{UserID: user.ID}, []model.LineItem{
		{VariantID: variant.ID, Quantity: 1},
	})
	require.NoError(t, err)

	merged, err := cartService.MergeVisitorCart(ctx, "never-used", Principal{UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, merged.LineItems, 1)
	assert.Equal(t, 1, merged.LineItems[0].Quantity)
}

func TestCartService_MergeVisitorCart_RequiresUser(t *testing.T) {
	cartService, _, _, _, _, _ := setupCartServiceTest(t)

	_, err := cartService.MergeVisitorCart(context.Background(), "visitor-x", Principal{})
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = cartService.MergeVisitorCart(context.Background(), "", Principal{UserID: 1})
	assert.ErrorIs(t, err, ErrInvalidVisitorID)
}
