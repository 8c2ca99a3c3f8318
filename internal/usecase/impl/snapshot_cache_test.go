package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshotCacheForTest(t *testing.T) (*snapshotCache, *fakeSubscription[[]*entity.Product], *fakeSubscription[[]*entity.Order]) {
	t.Helper()
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()

	cache := &snapshotCache{
		productRepo: products,
		orderRepo:   orders,
		logger:      testLogger(),
		products:    []*entity.Product{},
		orders:      []*entity.Order{},
	}
	require.NoError(t, cache.start(context.Background()))
	t.Cleanup(cache.stop)

	productSub := cache.productSub.(*fakeSubscription[[]*entity.Product])
	orderSub := cache.orderSub.(*fakeSubscription[[]*entity.Order])

	return cache, productSub, orderSub
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestSnapshotCache_EmptyBeforeFirstUpdate(t *testing.T) {
	cache, _, _ := newSnapshotCacheForTest(t)

	assert.Empty(t, cache.Products())
	assert.Empty(t, cache.Orders())
}

func TestSnapshotCache_LatestSnapshotWins(t *testing.T) {
	cache, productSub, _ := newSnapshotCacheForTest(t)

	productSub.push([]*entity.Product{{Name: "First"}})
	productSub.push([]*entity.Product{{Name: "Second"}, {Name: "Third"}})

	waitFor(t, func() bool { return len(cache.Products()) == 2 })
	assert.Equal(t, "Second", cache.Products()[0].Name)
}

func TestSnapshotCache_OrderFeedIndependent(t *testing.T) {
	cache, productSub, orderSub := newSnapshotCacheForTest(t)

	productSub.push([]*entity.Product{{Name: "P"}})
	orderSub.push([]*entity.Order{{OrderNumber: "ORD-1"}, {OrderNumber: "ORD-2"}})

	waitFor(t, func() bool { return len(cache.Products()) == 1 && len(cache.Orders()) == 2 })
}

func TestSnapshotCache_StopIsIdempotent(t *testing.T) {
	cache, _, _ := newSnapshotCacheForTest(t)

	cache.stop()
	cache.stop()
}
