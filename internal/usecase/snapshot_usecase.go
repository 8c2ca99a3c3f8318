package usecase

import "storefront/internal/domain/entity"

// SnapshotCache exposes the live in-memory copies of the product and order
// collections maintained by the store's change feed. Each accessor returns
// the latest whole-collection snapshot; callers must not mutate it.
type SnapshotCache interface {
	Products() []*entity.Product
	Orders() []*entity.Order
}
