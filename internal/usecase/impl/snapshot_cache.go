package impl

import (
	"context"
	"log/slog"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// snapshotCache keeps the latest whole-collection snapshots of products and
// orders, fed by the store's change feeds. Every update replaces the cached
// slice outright: the feed delivers full snapshots, so the newest one always
// wins and no merging is needed.
type snapshotCache struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	logger      *slog.Logger

	mu       sync.RWMutex
	products []*entity.Product
	orders   []*entity.Order

	cancel context.CancelFunc
	done   chan struct{}

	productSub repository.Subscription[[]*entity.Product]
	orderSub   repository.Subscription[[]*entity.Order]
}

// SnapshotCacheParams holds dependencies for SnapshotCache, injected by Fx.
type SnapshotCacheParams struct {
	fx.In
	fx.Lifecycle

	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Logger      *slog.Logger
}

// NewSnapshotCache creates the cache and ties its watch loops to the Fx
// application lifecycle.
func NewSnapshotCache(params SnapshotCacheParams) usecase.SnapshotCache {
	cache := &snapshotCache{
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		logger:      params.Logger,
		products:    []*entity.Product{},
		orders:      []*entity.Order{},
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			return cache.start(startCtx)
		},
		OnStop: func(context.Context) error {
			cache.stop()

			return nil
		},
	})

	return cache
}

func (c *snapshotCache) start(ctx context.Context) error {
	// The change feeds outlive startup, so their context must not inherit
	// the start hook's deadline.
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	productSub, err := c.productRepo.Watch(loopCtx)
	if err != nil {
		cancel()

		return err
	}

	orderSub, err := c.orderRepo.Watch(loopCtx)
	if err != nil {
		productSub.Stop()
		cancel()

		return err
	}

	c.productSub = productSub
	c.orderSub = orderSub
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(loopCtx)

	return nil
}

func (c *snapshotCache) run(ctx context.Context) {
	defer close(c.done)

	productUpdates := c.productSub.Updates()
	orderUpdates := c.orderSub.Updates()

	for productUpdates != nil || orderUpdates != nil {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-productUpdates:
			if !ok {
				c.logger.Warn("product change feed closed")
				productUpdates = nil

				continue
			}
			c.mu.Lock()
			c.products = snapshot
			c.mu.Unlock()
		case snapshot, ok := <-orderUpdates:
			if !ok {
				c.logger.Warn("order change feed closed")
				orderUpdates = nil

				continue
			}
			c.mu.Lock()
			c.orders = snapshot
			c.mu.Unlock()
		}
	}
}

func (c *snapshotCache) stop() {
	if c.cancel == nil {
		return
	}

	c.productSub.Stop()
	c.orderSub.Stop()
	c.cancel()
	<-c.done
}

func (c *snapshotCache) Products() []*entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.products
}

func (c *snapshotCache) Orders() []*entity.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.orders
}
