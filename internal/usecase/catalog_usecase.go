// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// Sort keys accepted by the catalog query.
const (
	SortByName      = "name"
	SortByPriceLow  = "price-low"
	SortByPriceHigh = "price-high"
	SortByRating    = "rating"
)

// CatalogFilter describes the storefront product listing filters. A zero
// value matches everything; PriceMax of zero means "no ceiling configured"
// and is replaced by the configured default.
type CatalogFilter struct {
	Category   string  // Canonical category ID or legacy display name.
	SearchTerm string  // Case-insensitive substring matched against name and description.
	PriceMin   float64 // Inclusive lower price bound.
	PriceMax   float64 // Inclusive upper price bound.
	SortBy     string  // One of the SortBy constants; defaults to name.
	Page       int     // 1-based page for pagination; 0 disables paging.
}

// CatalogPage is one page of filtered, sorted products.
type CatalogPage struct {
	Products   []*entity.Product
	TotalCount int // Count after filtering, before pagination.
	Page       int
	PerPage    int
}

// CatalogUsecase defines the interface for storefront catalog queries.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CatalogUsecase interface {
	// ListProducts fetches the product collection and applies the filter,
	// sort and pagination rules. The fetch uses the indexed active-products
	// query when available and transparently falls back to an unindexed scan
	// with application-side filtering and ordering.
	ListProducts(ctx context.Context, filter CatalogFilter) (*CatalogPage, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)

	// FeaturedProducts returns the products flagged featured, newest first,
	// capped at the configured featured limit.
	FeaturedProducts(ctx context.Context) ([]*entity.Product, error)

	// Categories returns the static category table for navigation.
	Categories(ctx context.Context) ([]entity.Category, error)
}
