package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CheckoutInput defines the data required to place an order from the
// current cart contents.
type CheckoutInput struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
}

// CheckoutOutput returns the identifiers of the created order.
type CheckoutOutput struct {
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	Total       float64 `json:"total"`
}

// CheckoutUsecase turns a cart into an order. Payment is not integrated;
// orders are created with pending status and pending payment.
type CheckoutUsecase interface {
	// PlaceOrder creates an order from the user's cart, applying the
	// configured tax and shipping policy, then clears the cart and publishes
	// an order-created event.
	PlaceOrder(ctx context.Context, userID string, input CheckoutInput) (*CheckoutOutput, error)

	// GetOrder retrieves one of the user's orders.
	GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error)

	// ListOrders retrieves the user's orders, newest first.
	ListOrders(ctx context.Context, userID string) ([]*entity.Order, error)

	// OrderQR renders a PNG QR code encoding the order tracking URL.
	OrderQR(ctx context.Context, userID, orderID string) ([]byte, error)
}
