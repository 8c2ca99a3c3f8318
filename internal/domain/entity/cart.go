// Package entity contains the core business objects of the project.
package entity

import "time"

// CartItem is a product snapshot plus quantity inside a cart. Items are
// unique by ProductID; adding the same product again merges quantities.
type CartItem struct {
	ProductID string    `firestore:"productId" json:"productId"`
	Name      string    `firestore:"name" json:"name"`
	Image     string    `firestore:"image" json:"image"`
	UnitPrice float64   `firestore:"unitPrice" json:"unitPrice"`
	Quantity  int       `firestore:"quantity" json:"quantity"`
	AddedAt   time.Time `firestore:"addedAt" json:"addedAt"`
}

// Cart holds a customer's pending items. One document per user, keyed by the
// user ID; created empty on first read and cleared after checkout.
type Cart struct {
	UserID string     `firestore:"-" json:"userId"`
	Items  []CartItem `firestore:"items" json:"items"`
}

// TotalItems returns the summed quantity across all items.
func (c *Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}

	return n
}

// Subtotal returns the summed price x quantity across all items.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.UnitPrice * float64(item.Quantity)
	}

	return sum
}
