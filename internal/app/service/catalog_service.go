package service

import (
	"errors"

	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/internal/app/repository"
	"github.com/rcalhoun/summit-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
)

// VariantPriceInput pairs a role code with a price when creating variants.
type VariantPriceInput struct {
	RoleCode string
	Price    float64
}

type CatalogService interface {
	CreateProduct(product *model.Product) error
	GetProductByID(id uint) (*model.Product, error)
	ListProducts(category string) ([]model.Product, error)
	CreateVariant(variant *model.Variant, prices []VariantPriceInput) error
	LookupVariantForRole(roleCode string, variantID uint, catalogCode string) (*model.Variant, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})
	return s.catalogRepo.CreateProduct(product)
}

func (s *catalogService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.catalogRepo.FindProductByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(category string) ([]model.Product, error) {
	return s.catalogRepo.ListProducts(category)
}

func (s *catalogService) CreateVariant(variant *model.Variant, prices []VariantPriceInput) error {
	logger.Info("Creating variant", map[string]interface{}{
		"product_id":   variant.ProductID,
		"sku":          variant.SKU,
		"catalog_code": variant.CatalogCode,
		"price_count":  len(prices),
	})

	if _, err := s.catalogRepo.FindProductByID(variant.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create variant: product not found", map[string]interface{}{
				"product_id": variant.ProductID,
			})
			return ErrProductNotFound
		}
		return err
	}

	if err := s.catalogRepo.CreateVariant(variant); err != nil {
		return err
	}

	for _, p := range prices {
		price := &model.VariantPrice{
			VariantID: variant.ID,
			RoleCode:  p.RoleCode,
			Price:     p.Price,
		}
		if err := s.catalogRepo.CreateVariantPrice(price); err != nil {
			return err
		}
	}
	return nil
}

func (s *catalogService) LookupVariantForRole(roleCode string, variantID uint, catalogCode string) (*model.Variant, error) {
	if roleCode == "" {
		return nil, ErrInvalidRoleCode
	}

	variant, err := s.catalogRepo.FindForRole(roleCode, variantID, catalogCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return variant, nil
}
