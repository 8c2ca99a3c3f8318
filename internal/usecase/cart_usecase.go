package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartView is the cart plus its derived totals, as rendered by the cart page.
type CartView struct {
	Items      []entity.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	Subtotal   float64           `json:"subtotal"`
}

// CartUsecase defines the shopping cart operations. Items are unique by
// product ID; adding an existing product merges quantities.
type CartUsecase interface {
	// Get returns the user's cart, empty if none exists yet.
	Get(ctx context.Context, userID string) (*CartView, error)

	// Add puts quantity units of a product into the cart, snapshotting the
	// product's current name, image and price.
	Add(ctx context.Context, userID, productID string, quantity int) (*CartView, error)

	// UpdateQuantity sets the quantity for a cart line. A quantity of zero or
	// less removes the line.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*CartView, error)

	// Remove deletes a cart line.
	Remove(ctx context.Context, userID, productID string) (*CartView, error)

	// Clear empties the cart.
	Clear(ctx context.Context, userID string) error
}
