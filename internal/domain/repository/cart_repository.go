// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartRepository defines the operations for cart persistence. A cart lives in
// a single document keyed by the user ID; reads of a missing document return
// an empty cart rather than an error.
type CartRepository interface {
	// Get retrieves the cart for a user, creating an empty one when absent.
	Get(ctx context.Context, userID string) (*entity.Cart, error)

	// Put replaces the stored item list with the given cart's items.
	Put(ctx context.Context, cart *entity.Cart) error

	// Clear empties the cart for a user.
	Clear(ctx context.Context, userID string) error
}
