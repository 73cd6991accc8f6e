package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/rcalhoun/summit-backend/config"
	"github.com/rcalhoun/summit-backend/internal/app/cache"
	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/internal/app/repository"
	"github.com/rcalhoun/summit-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidUserID    = errors.New("user id is required")
	ErrInvalidVisitorID = errors.New("visitor id is required")
	ErrInvalidRoleCode  = errors.New("no role code could be resolved")
	ErrInvalidOption    = errors.New("neither user nor role code available to validate cart")
)

// Principal identifies the owner of a cart: an authenticated user
// (UserID > 0) or an anonymous visitor. RoleCode is the request-level
// pricing context for visitor carts.
type Principal struct {
	UserID    uint
	VisitorID string
	RoleCode  string
}

type CartService interface {
	GetCart(ctx context.Context, p Principal) (*model.Cart, error)
	ReplaceCart(ctx context.Context, p Principal, cart *model.Cart) (*model.Cart, error)
	AddLineItems(ctx context.Context, p Principal, deltas []model.LineItem) (*model.Cart, error)
	SetLineItems(ctx context.Context, p Principal, items []model.LineItem) (*model.Cart, error)
	DeleteCart(ctx context.Context, p Principal) error
	MergeVisitorCart(ctx context.Context, visitorID string, p Principal) (*model.Cart, error)
}

type cartService struct {
	store       cache.CartStore
	catalogRepo repository.CatalogRepository
	cfg         config.ShoppingCartConfig
}

func NewCartService(
	store cache.CartStore,
	catalogRepo repository.CatalogRepository,
	cfg config.ShoppingCartConfig,
) CartService {
	return &cartService{
		store:       store,
		catalogRepo: catalogRepo,
		cfg:         cfg,
	}
}

// cacheKey resolves the cache key for a principal. User carts take
// precedence when both identifiers are present.
func (s *cartService) cacheKey(p Principal) (string, error) {
	if p.UserID > 0 {
		return cache.KeyForUser(p.UserID), nil
	}
	if p.VisitorID != "" {
		return cache.KeyForVisitor(p.VisitorID), nil
	}
	return "", ErrInvalidVisitorID
}

func (p Principal) id() string {
	if p.UserID > 0 {
		return strconv.FormatUint(uint64(p.UserID), 10)
	}
	return p.VisitorID
}

func (s *cartService) GetCart(ctx context.Context, p Principal) (*model.Cart, error) {
	key, err := s.cacheKey(p)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Error("Failed to load cart", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}
	if cart == nil {
		// Cache miss is an empty cart, never an error
		return &model.Cart{ID: p.id(), LineItems: []model.LineItem{}}, nil
	}

	cart.ID = p.id()
	if cart.LineItems == nil {
		cart.LineItems = []model.LineItem{}
	}
	return cart, nil
}

func (s *cartService) ReplaceCart(ctx context.Context, p Principal, cart *model.Cart) (*model.Cart, error) {
	key, err := s.cacheKey(p)
	if err != nil {
		return nil, err
	}

	logger.Info("Replacing cart", map[string]interface{}{
		"key":   key,
		"items": len(cart.LineItems),
	})

	roleCode := cart.RoleCode
	if roleCode == "" {
		roleCode = p.RoleCode
	}

	checked, err := s.checkCart(ctx, p, roleCode, cart.LineItems)
	if err != nil {
		return nil, err
	}

	result := &model.Cart{
		ID:        p.id(),
		RoleCode:  roleCode,
		LineItems: checked,
	}
	if err := s.store.Set(ctx, key, result, cache.DefaultTTL); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *cartService) AddLineItems(ctx context.Context, p Principal, deltas []model.LineItem) (*model.Cart, error) {
	key, err := s.cacheKey(p)
	if err != nil {
		return nil, err
	}

	logger.Info("Adding line items to cart", map[string]interface{}{
		"key":    key,
		"deltas": len(deltas),
	})

	existing, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var existingItems []model.LineItem
	roleCode := p.RoleCode
	if existing != nil {
		existingItems = existing.LineItems
		if existing.RoleCode != "" {
			roleCode = existing.RoleCode
		}
	}

	merged := MergeLineItems(existingItems, deltas)

	checked, err := s.checkCart(ctx, p, roleCode, merged)
	if err != nil {
		return nil, err
	}

	result := &model.Cart{
		ID:        p.id(),
		RoleCode:  roleCode,
		LineItems: checked,
	}
	if err := s.store.Set(ctx, key, result, cache.DefaultTTL); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *cartService) SetLineItems(ctx context.Context, p Principal, items []model.LineItem) (*model.Cart, error) {
	key, err := s.cacheKey(p)
	if err != nil {
		return nil, err
	}

	logger.Info("Setting cart line items", map[string]interface{}{
		"key":   key,
		"items": len(items),
	})

	existing, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	roleCode := p.RoleCode
	if existing != nil && existing.RoleCode != "" {
		roleCode = existing.RoleCode
	}

	clamped := MergeLineItems(nil, items)

	checked, err := s.checkCart(ctx, p, roleCode, clamped)
	if err != nil {
		return nil, err
	}

	result := &model.Cart{
		ID:        p.id(),
		RoleCode:  roleCode,
		LineItems: checked,
	}
	if err := s.store.Set(ctx, key, result, cache.DefaultTTL); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *cartService) DeleteCart(ctx context.Context, p Principal) error {
	key, err := s.cacheKey(p)
	if err != nil {
		return err
	}

	logger.Info("Deleting cart", map[string]interface{}{
		"key": key,
	})

	return s.store.Delete(ctx, key)
}

// MergeVisitorCart folds an anonymous visitor's cart into the given user's
// cart, validates the result under the user, and drops the visitor entry.
// Called after login.
func (s *cartService) MergeVisitorCart(ctx context.Context, visitorID string, p Principal) (*model.Cart, error) {
	if p.UserID == 0 {
		return nil, ErrInvalidUserID
	}
	if visitorID == "" {
		return nil, ErrInvalidVisitorID
	}

	logger.Info("Merging visitor cart into user cart", map[string]interface{}{
		"visitor_id": visitorID,
		"user_id":    p.UserID,
	})

	visitorCart, err := s.store.Get(ctx, cache.KeyForVisitor(visitorID))
	if err != nil {
		return nil, err
	}
	if visitorCart == nil || len(visitorCart.LineItems) == 0 {
		// Nothing to merge; still make sure the stale visitor key is gone
		if err := s.store.Delete(ctx, cache.KeyForVisitor(visitorID)); err != nil {
			return nil, err
		}
		return s.GetCart(ctx, p)
	}

	merged, err := s.AddLineItems(ctx, p, visitorCart.LineItems)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, cache.KeyForVisitor(visitorID)); err != nil {
		return nil, err
	}
	return merged, nil
}

// checkCart filters line items down to those currently purchasable for
// the principal and fills per-item catalog defaults. Items whose variant
// cannot be resolved are dropped silently; a missing lookup basis (no
// user and no resolvable role code) fails the whole call.
func (s *cartService) checkCart(ctx context.Context, p Principal, roleCode string, items []model.LineItem) ([]model.LineItem, error) {
	checked := make([]model.LineItem, 0, len(items))

	for _, item := range items {
		if item.CatalogCode == "" {
			item.CatalogCode = s.cfg.DefaultCatalogCode
		}

		var err error
		if p.UserID > 0 {
			_, err = s.catalogRepo.FindForUser(p.UserID, item.VariantID, item.CatalogCode)
		} else {
			itemRole := item.RoleCode
			if itemRole == "" {
				itemRole = roleCode
			}
			if itemRole == "" {
				itemRole = s.cfg.DefaultRoleCode
			}
			if itemRole == "" {
				logger.Warn("No lookup basis for cart item", map[string]interface{}{
					"variant_id": item.VariantID,
				})
				return nil, ErrInvalidOption
			}
			_, err = s.catalogRepo.FindForRole(itemRole, item.VariantID, item.CatalogCode)
		}

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Debug("Dropping unpurchasable cart item", map[string]interface{}{
					"variant_id":   item.VariantID,
					"catalog_code": item.CatalogCode,
				})
				continue
			}
			logger.Error("Failed to look up variant for cart item", err, map[string]interface{}{
				"variant_id": item.VariantID,
			})
			return nil, err
		}

		checked = append(checked, item)
	}

	return checked, nil
}
