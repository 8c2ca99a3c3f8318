package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// HeroUsecase manages the bounded, ordered hero carousel shown on the
// landing page. The carousel is a FIFO ring: when full, adding a product
// evicts the earliest-added member.
type HeroUsecase interface {
	// List returns carousel members ordered by slot ascending. When the
	// ordered read is rejected upstream it falls back to up to MaxSlots
	// featured active products; that fallback ordering is advisory only.
	List(ctx context.Context) ([]*entity.Product, error)

	// Add inserts a product into the carousel. Adding an existing member is
	// a no-op. At capacity the earliest-added member is evicted first.
	Add(ctx context.Context, productID string) error

	// Remove takes a product out of the carousel and renumbers the remaining
	// members to a contiguous 0..k-1 sequence.
	Remove(ctx context.Context, productID string) error
}
