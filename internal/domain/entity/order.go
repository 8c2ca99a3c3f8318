// Package entity contains the core business objects of the project.
package entity

import "time"

// Order status values as stored in the orders collection.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	// OrderStatusCompleted is outside the lifecycle enum above but is the
	// status the revenue rollup recognizes. Kept as-is from the original
	// storefront policy: revenue counts only at completion.
	OrderStatusCompleted = "completed"
)

// Payment status values as stored on an order.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// OrderItem is a line item captured at checkout time. UnitPrice is the
// product price at order time; later catalog price changes do not affect it.
type OrderItem struct {
	ProductID string  `firestore:"productId" json:"productId"`
	Name      string  `firestore:"name" json:"name"`
	Image     string  `firestore:"image" json:"image"`
	UnitPrice float64 `firestore:"unitPrice" json:"unitPrice"`
	Quantity  int     `firestore:"quantity" json:"quantity"`
}

// Order represents a placed order in the orders collection.
// Total equals Subtotal + Tax + Shipping as computed at creation time;
// nothing in this layer recomputes it afterwards.
type Order struct {
	ID            string      `firestore:"-" json:"id"`                        // Document ID, assigned by the store.
	OrderNumber   string      `firestore:"orderNumber" json:"orderNumber"`     // Human-facing number, ORD-<unix millis>.
	UserID        string      `firestore:"userId" json:"userId"`               // Customer account that placed the order.
	CustomerName  string      `firestore:"customerName" json:"customerName"`   // Shipping contact name.
	CustomerEmail string      `firestore:"customerEmail" json:"customerEmail"` // Shipping contact email.
	Items         []OrderItem `firestore:"items" json:"items"`                 // Line items, unique by product ID.
	Subtotal      float64     `firestore:"subtotal" json:"subtotal"`           // Sum of item price x quantity.
	Tax           float64     `firestore:"tax" json:"tax"`                     // Configured rate applied to the subtotal.
	Shipping      float64     `firestore:"shipping" json:"shipping"`           // Flat shipping cost, zero above the free threshold.
	Total         float64     `firestore:"total" json:"total"`                 // Subtotal + Tax + Shipping.
	Status        string      `firestore:"status" json:"status"`               // Lifecycle status, see constants above.
	PaymentStatus string      `firestore:"paymentStatus" json:"paymentStatus"` // Payment state, see constants above.
	CreatedAt     time.Time   `firestore:"createdAt" json:"createdAt"`         // Timestamp of order creation.
	UpdatedAt     time.Time   `firestore:"updatedAt" json:"updatedAt"`         // Timestamp of the last modification.
}
