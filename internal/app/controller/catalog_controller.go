package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/internal/app/service"
	"github.com/rcalhoun/summit-backend/internal/errors"
	"github.com/rcalhoun/summit-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"image_urls"`
}

type CreateVariantRequest struct {
	ProductID   uint                  `json:"product_id" binding:"required"`
	SKU         string                `json:"sku" binding:"required"`
	CatalogCode string                `json:"catalog_code" binding:"required"`
	OptionLabel string                `json:"option_label"`
	Prices      []VariantPricePayload `json:"prices" binding:"required,min=1"`
}

type VariantPricePayload struct {
	RoleCode string  `json:"role_code" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
}

// ListProducts lists catalog products, optionally filtered by category
// GET /api/v1/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.catalogService.ListProducts(c.Query("category"))
	if err != nil {
		log.Error("Failed to list products", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product with its variants
// GET /api/v1/products/:id
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.catalogService.GetProductByID(uint(id))
	if err != nil {
		if stderrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetVariantForRole returns a variant priced for a role, mirroring the
// lookup the cart validator performs
// GET /api/v1/variants/:id?role-code=...&catalog-code=...
func (ctrl *CatalogController) GetVariantForRole(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid variant ID")
		return
	}

	variant, err := ctrl.catalogService.LookupVariantForRole(
		c.Query("role-code"),
		uint(id),
		c.Query("catalog-code"),
	)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidRoleCode) {
			errors.BadRequest(c, errors.CartInvalidRoleCode, "A role-code query parameter is required")
			return
		}
		if stderrors.Is(err, service.ErrVariantNotFound) {
			errors.NotFound(c, errors.CatalogVariantNotFound, "Variant not found for this role and catalog")
			return
		}
		log.Error("Failed to look up variant", err, map[string]interface{}{
			"variant_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variant": variant,
	})
}

// CreateProduct creates a catalog product
// POST /api/v1/products (admin)
func (ctrl *CatalogController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    model.ProductCategory(req.Category),
		ImageURLs:   req.ImageURLs,
	}

	if err := ctrl.catalogService.CreateProduct(product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		info := errors.ParseError(err, "create product")
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// CreateVariant creates a variant with role prices
// POST /api/v1/variants (admin)
func (ctrl *CatalogController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create variant request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	variant := &model.Variant{
		ProductID:   req.ProductID,
		SKU:         req.SKU,
		CatalogCode: req.CatalogCode,
		OptionLabel: req.OptionLabel,
	}

	prices := make([]service.VariantPriceInput, 0, len(req.Prices))
	for _, p := range req.Prices {
		prices = append(prices, service.VariantPriceInput{
			RoleCode: p.RoleCode,
			Price:    p.Price,
		})
	}

	if err := ctrl.catalogService.CreateVariant(variant, prices); err != nil {
		if stderrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to create variant", err, map[string]interface{}{
			"sku": req.SKU,
		})
		info := errors.ParseError(err, "create variant")
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"variant": variant,
	})
}
