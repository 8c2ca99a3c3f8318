// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrIndexUnavailable is returned when the store rejects a query because the
	// composite index backing it is missing or still building. Callers fall back
	// to an unindexed fetch and filter/sort in application code.
	ErrIndexUnavailable = errors.New("index unavailable for query")
)

// ProductRepository defines the standard operations for product persistence.
// The application layer depends on this interface, not the concrete implementation.
type ProductRepository interface {
	// FetchActive retrieves active products ordered by creation time descending,
	// up to limit. Returns ErrIndexUnavailable when the indexed query is rejected.
	FetchActive(ctx context.Context, limit int) ([]*entity.Product, error)

	// FetchAll retrieves up to limit products with no status filter and no
	// defined ordering. This is the fallback tier behind FetchActive.
	FetchAll(ctx context.Context, limit int) ([]*entity.Product, error)

	// FindByID retrieves a single product by its document ID.
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// Create persists a new product and returns its assigned document ID.
	Create(ctx context.Context, product *entity.Product) (string, error)

	// UpdateFields applies a partial field update to a product document.
	// Each call is one independent write; there is no transaction across calls.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error

	// Delete removes a product document.
	Delete(ctx context.Context, id string) error

	// FindHero retrieves hero carousel members ordered by slot ascending,
	// capped at max. Returns ErrIndexUnavailable when the ordered query is
	// rejected; callers then use FindFeaturedActive as an advisory fallback.
	FindHero(ctx context.Context, max int) ([]*entity.Product, error)

	// FindFeaturedActive retrieves up to max products flagged featured and
	// active, with no defined ordering.
	FindFeaturedActive(ctx context.Context, max int) ([]*entity.Product, error)

	// Watch opens a live feed of whole-collection product snapshots.
	Watch(ctx context.Context) (Subscription[[]*entity.Product], error)
}
