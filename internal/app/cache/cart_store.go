package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL passed to Set means "use the store's configured expiry".
const DefaultTTL = time.Duration(-1)

// CartStore is the key-value persistence layer for carts. Get returns
// (nil, nil) when the key is absent or expired; Delete is idempotent.
// Connectivity and serialization failures surface unchanged; no retry
// happens at this layer.
type CartStore interface {
	Get(ctx context.Context, key string) (*model.Cart, error)
	Set(ctx context.Context, key string, cart *model.Cart, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisCartStore struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisCartStore creates a Redis-backed cart store. Carts are stored as
// JSON values; defaultTTL applies to every Set called with DefaultTTL.
func NewRedisCartStore(client *redis.Client, defaultTTL time.Duration) CartStore {
	return &redisCartStore{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

func (s *redisCartStore) Get(ctx context.Context, key string) (*model.Cart, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		// Key does not exist - cache miss, not an error
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to read cart from cache", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	var cart model.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		logger.Error("Failed to decode cached cart", err, map[string]interface{}{
			"key": key,
		})
		return nil, fmt.Errorf("failed to decode cached cart: %w", err)
	}
	return &cart, nil
}

func (s *redisCartStore) Set(ctx context.Context, key string, cart *model.Cart, ttl time.Duration) error {
	if ttl < 0 {
		ttl = s.defaultTTL
	}

	data, err := json.Marshal(cart)
	if err != nil {
		logger.Error("Failed to encode cart for cache", err, map[string]interface{}{
			"key": key,
		})
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Error("Failed to write cart to cache", err, map[string]interface{}{
			"key": key,
			"ttl": ttl.String(),
		})
		return err
	}

	logger.Debug("Cart written to cache", map[string]interface{}{
		"key":   key,
		"items": len(cart.LineItems),
		"ttl":   ttl.String(),
	})
	return nil
}

func (s *redisCartStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		logger.Error("Failed to delete cart from cache", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}
