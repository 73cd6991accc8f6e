package scheduler

import (
	"context"
	"encoding/json"

	"github.com/rcalhoun/summit-backend/internal/app/cache"
	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// CartSweeper reclaims abandoned visitor carts ahead of their TTL: a cart
// whose line items are all zero-quantity holds no purchase intent, so the
// nightly sweep deletes it instead of letting it occupy the cache until
// expiry.
type CartSweeper struct {
	cron   *cron.Cron
	client *redis.Client
}

func NewCartSweeper(client *redis.Client) *CartSweeper {
	return &CartSweeper{
		cron:   cron.New(),
		client: client,
	}
}

// Start schedules the nightly sweep at 04:00
func (s *CartSweeper) Start() error {
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		logger.Info("Starting visitor cart sweep", nil)

		swept, scanned, err := s.Sweep(context.Background())
		if err != nil {
			logger.Error("Visitor cart sweep failed", err)
			return
		}

		logger.Info("Visitor cart sweep completed", map[string]interface{}{
			"scanned": scanned,
			"swept":   swept,
		})
	})
	if err != nil {
		logger.Error("Failed to schedule cart sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart sweeper started (daily at 4:00 AM)", nil)
	return nil
}

// Stop stops the scheduler
func (s *CartSweeper) Stop() {
	logger.Info("Stopping cart sweeper...", nil)
	s.cron.Stop()
}

// Sweep scans the visitor cart namespace and deletes carts that hold only
// zero-quantity line items. Returns the number of swept and scanned keys.
func (s *CartSweeper) Sweep(ctx context.Context) (swept, scanned int, err error) {
	iter := s.client.Scan(ctx, 0, cache.VisitorKeyPrefix+"*", 100).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		scanned++

		val, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue // expired between scan and read
		}
		if err != nil {
			return swept, scanned, err
		}

		var cart model.Cart
		if err := json.Unmarshal([]byte(val), &cart); err != nil {
			logger.Warn("Skipping undecodable cart during sweep", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
			continue
		}

		if !allZeroQuantity(cart.LineItems) {
			continue
		}

		if err := s.client.Del(ctx, key).Err(); err != nil {
			return swept, scanned, err
		}
		swept++

		logger.Debug("Swept empty visitor cart", map[string]interface{}{
			"key": key,
		})
	}
	if err := iter.Err(); err != nil {
		return swept, scanned, err
	}

	return swept, scanned, nil
}

func allZeroQuantity(items []model.LineItem) bool {
	for _, item := range items {
		if item.Quantity > 0 {
			return false
		}
	}
	return true
}
