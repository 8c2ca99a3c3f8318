package service

import (
	"context"
)

// Order event types published to the fulfilment pipeline.
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
	OrderEventPaymentUpdate = "order.payment_updated"
)

// OrderEvent represents an order lifecycle event consumed by downstream
// fulfilment workers. Events are fire-and-forget; publication failure never
// fails the originating request.
type OrderEvent struct {
	RequestID   string  `json:"request_id,omitempty"` // For distributed tracing
	Type        string  `json:"type"`
	OrderID     string  `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	UserID      string  `json:"user_id,omitempty"`
	Status      string  `json:"status,omitempty"`
	Total       float64 `json:"total,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
