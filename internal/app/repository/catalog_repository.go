package repository

import (
	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/pkg/logger"
	"gorm.io/gorm"
)

// CatalogRepository resolves purchasable variants. FindForUser and
// FindForRole return gorm.ErrRecordNotFound when the variant does not
// exist, is soft-deleted, or is not priced for the role/catalog asked for.
type CatalogRepository interface {
	CreateProduct(product *model.Product) error
	FindProductByID(id uint) (*model.Product, error)
	ListProducts(category string) ([]model.Product, error)
	CreateVariant(variant *model.Variant) error
	CreateVariantPrice(price *model.VariantPrice) error
	FindVariantBySKU(sku string) (*model.Variant, error)
	FindForUser(userID, variantID uint, catalogCode string) (*model.Variant, error)
	FindForRole(roleCode string, variantID uint, catalogCode string) (*model.Variant, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateProduct(product *model.Product) error {
	logger.Debug("Creating product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

func (r *catalogRepository) FindProductByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Variants").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) ListProducts(category string) ([]model.Product, error) {
	var products []model.Product
	query := r.db.Preload("Variants")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}
	return products, nil
}

func (r *catalogRepository) CreateVariant(variant *model.Variant) error {
	logger.Debug("Creating variant", map[string]interface{}{
		"product_id":   variant.ProductID,
		"sku":          variant.SKU,
		"catalog_code": variant.CatalogCode,
	})

	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create variant", err, map[string]interface{}{
			"sku": variant.SKU,
		})
		return err
	}
	return nil
}

func (r *catalogRepository) CreateVariantPrice(price *model.VariantPrice) error {
	if err := r.db.Create(price).Error; err != nil {
		logger.Error("Failed to create variant price", err, map[string]interface{}{
			"variant_id": price.VariantID,
			"role_code":  price.RoleCode,
		})
		return err
	}
	return nil
}

func (r *catalogRepository) FindVariantBySKU(sku string) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.Where("sku = ?", sku).First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *catalogRepository) FindForUser(userID, variantID uint, catalogCode string) (*model.Variant, error) {
	logger.Debug("Looking up variant for user", map[string]interface{}{
		"user_id":      userID,
		"variant_id":   variantID,
		"catalog_code": catalogCode,
	})

	var user model.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	return r.FindForRole(string(user.RoleCode), variantID, catalogCode)
}

func (r *catalogRepository) FindForRole(roleCode string, variantID uint, catalogCode string) (*model.Variant, error) {
	logger.Debug("Looking up variant for role", map[string]interface{}{
		"role_code":    roleCode,
		"variant_id":   variantID,
		"catalog_code": catalogCode,
	})

	var variant model.Variant
	err := r.db.
		Joins("JOIN variant_prices ON variant_prices.variant_id = variants.id").
		Where("variants.id = ? AND variants.catalog_code = ? AND variant_prices.role_code = ?",
			variantID, catalogCode, roleCode).
		Preload("Prices", "role_code = ?", roleCode).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}
