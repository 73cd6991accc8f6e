package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/internal/app/service"
	"github.com/rcalhoun/summit-backend/internal/errors"
	"github.com/rcalhoun/summit-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type MergeCartRequest struct {
	VisitorID string `json:"visitor-id" binding:"required"`
}

// userPrincipal builds the principal for the authenticated surface.
// Writes the error response and returns false when no user is in context.
func userPrincipal(c *gin.Context) (service.Principal, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.BadRequest(c, errors.CartInvalidUserID, "User identifier is required")
		return service.Principal{}, false
	}

	p := service.Principal{UserID: userID}
	if role, ok := middleware.GetUserRole(c); ok {
		p.RoleCode = string(role)
	}
	return p, true
}

// visitorPrincipal builds the principal for the anonymous surface from the
// path parameter and the optional role-code query.
func visitorPrincipal(c *gin.Context) (service.Principal, bool) {
	visitorID := c.Param("visitorId")
	if visitorID == "" {
		errors.BadRequest(c, errors.CartInvalidVisitorID, "Visitor identifier is required")
		return service.Principal{}, false
	}

	return service.Principal{
		VisitorID: visitorID,
		RoleCode:  c.Query("role-code"),
	}, true
}

func (ctrl *CartController) respondCartError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case stderrors.Is(err, service.ErrInvalidUserID):
		errors.BadRequest(c, errors.CartInvalidUserID, "User identifier is required")
	case stderrors.Is(err, service.ErrInvalidVisitorID):
		errors.BadRequest(c, errors.CartInvalidVisitorID, "Visitor identifier is required")
	case stderrors.Is(err, service.ErrInvalidRoleCode):
		errors.BadRequest(c, errors.CartInvalidRoleCode, "No role code could be resolved for this request")
	case stderrors.Is(err, service.ErrInvalidOption):
		errors.BadRequest(c, errors.CartInvalidOption, "Cart items cannot be validated without a user or role code")
	default:
		log.Error("Cart operation failed", err, nil)
		errors.InternalError(c, "")
	}
}

func (ctrl *CartController) handleGet(c *gin.Context, p service.Principal) {
	cart, err := ctrl.cartService.GetCart(c.Request.Context(), p)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartPayload(cart))
}

func (ctrl *CartController) handleReplace(c *gin.Context, p service.Principal) {
	log := middleware.GetLoggerFromContext(c)

	var req CartPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart replace request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	cart := &model.Cart{
		RoleCode:  req.RoleCode,
		LineItems: toModelLineItems(req.LineItems),
	}

	result, err := ctrl.cartService.ReplaceCart(c.Request.Context(), p, cart)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartPayload(result))
}

func (ctrl *CartController) handleAddItems(c *gin.Context, p service.Principal) {
	log := middleware.GetLoggerFromContext(c)

	var req []LineItemPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add line items request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	result, err := ctrl.cartService.AddLineItems(c.Request.Context(), p, toModelLineItems(req))
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartPayload(result))
}

func (ctrl *CartController) handleSetItems(c *gin.Context, p service.Principal) {
	log := middleware.GetLoggerFromContext(c)

	var req []LineItemPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid set line items request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	result, err := ctrl.cartService.SetLineItems(c.Request.Context(), p, toModelLineItems(req))
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartPayload(result))
}

func (ctrl *CartController) handleDelete(c *gin.Context, p service.Principal) {
	if err := ctrl.cartService.DeleteCart(c.Request.Context(), p); err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart deleted successfully",
	})
}

// GetCart returns the authenticated user's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	p, ok := userPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleGet(c, p)
}

// ReplaceCart replaces the authenticated user's cart
// POST /api/v1/cart
func (ctrl *CartController) ReplaceCart(c *gin.Context) {
	p, ok := userPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleReplace(c, p)
}

// AddItems merges a line-item delta into the authenticated user's cart
// POST /api/v1/cart/items
func (ctrl *CartController) AddItems(c *gin.Context) {
	p, ok := userPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleAddItems(c, p)
}

// SetItems replaces the authenticated user's line items
// PUT /api/v1/cart/items
func (ctrl *CartController) SetItems(c *gin.Context) {
	p, ok := userPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleSetItems(c, p)
}

// DeleteCart drops the authenticated user's cart
// DELETE /api/v1/cart
func (ctrl *CartController) DeleteCart(c *gin.Context) {
	p, ok := userPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleDelete(c, p)
}

// MergeCart folds a visitor cart into the authenticated user's cart
// POST /api/v1/cart/merge
func (ctrl *CartController) MergeCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	p, ok := userPrincipal(c)
	if !ok {
		return
	}

	var req MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid merge cart request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.CartInvalidVisitorID, "Visitor identifier is required")
		return
	}

	result, err := ctrl.cartService.MergeVisitorCart(c.Request.Context(), req.VisitorID, p)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartPayload(result))
}

// CreateVisitorCart issues a fresh visitor identifier
// POST /api/v1/visitor-carts
func (ctrl *CartController) CreateVisitorCart(c *gin.Context) {
	visitorID := uuid.New().String()

	middleware.GetLoggerFromContext(c).Info("Issued visitor cart identifier", map[string]interface{}{
		"visitor_id": visitorID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"visitor-id": visitorID,
	})
}

// GetVisitorCart returns a visitor's cart
// GET /api/v1/visitor-carts/:visitorId
func (ctrl *CartController) GetVisitorCart(c *gin.Context) {
	p, ok := visitorPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleGet(c, p)
}

// ReplaceVisitorCart replaces a visitor's cart
// POST /api/v1/visitor-carts/:visitorId
func (ctrl *CartController) ReplaceVisitorCart(c *gin.Context) {
	p, ok := visitorPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleReplace(c, p)
}

// AddVisitorItems merges a line-item delta into a visitor's cart
// POST /api/v1/visitor-carts/:visitorId/items
func (ctrl *CartController) AddVisitorItems(c *gin.Context) {
	p, ok := visitorPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleAddItems(c, p)
}

// SetVisitorItems replaces a visitor's line items
// PUT /api/v1/visitor-carts/:visitorId/items
func (ctrl *CartController) SetVisitorItems(c *gin.Context) {
	p, ok := visitorPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleSetItems(c, p)
}

// DeleteVisitorCart drops a visitor's cart
// DELETE /api/v1/visitor-carts/:visitorId
func (ctrl *CartController) DeleteVisitorCart(c *gin.Context) {
	p, ok := visitorPrincipal(c)
	if !ok {
		return
	}
	ctrl.handleDelete(c, p)
}
