// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists a new order and returns its assigned document ID.
	Create(ctx context.Context, order *entity.Order) (string, error)

	// FindByID retrieves a single order by its document ID.
	FindByID(ctx context.Context, id string) (*entity.Order, error)

	// FindByUser retrieves all orders for a user, newest first.
	FindByUser(ctx context.Context, userID string) ([]*entity.Order, error)

	// FetchAll retrieves every order, newest first. Admin only.
	FetchAll(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus sets the lifecycle status of an order.
	UpdateStatus(ctx context.Context, id, status string) error

	// UpdatePaymentStatus sets the payment state of an order.
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error

	// Delete removes an order document.
	Delete(ctx context.Context, id string) error

	// Watch opens a live feed of whole-collection order snapshots.
	Watch(ctx context.Context) (Subscription[[]*entity.Order], error)
}
