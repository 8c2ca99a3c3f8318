package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// Analytics is the derived metrics block shown on the admin dashboard.
// It is a pure function of the order and product snapshots and is recomputed
// in full on every request.
type Analytics struct {
	TotalOrders    int               `json:"totalOrders"`
	TotalRevenue   float64           `json:"totalRevenue"` // Sum of totals over completed orders only.
	TotalProducts  int               `json:"totalProducts"`
	ActiveProducts int               `json:"activeProducts"`
	OrdersByStatus map[string]int    `json:"ordersByStatus"`
	TopProducts    []*entity.Product `json:"topProducts"`      // Active products by stock descending, top 5.
	LowStock       []*entity.Product `json:"lowStockProducts"` // Products with stock below the low-stock floor, any status.
}

// NewProductInput defines the data required to create a product from the
// admin console. Validation tags are enforced before any write is attempted.
type NewProductInput struct {
	Name          string   `json:"name" validate:"required,max=100"`
	Category      string   `json:"category" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice float64  `json:"originalPrice" validate:"omitempty,gtefield=Price"`
	Stock         int      `json:"stock" validate:"gte=0"`
	SKU           string   `json:"sku"`
	Description   string   `json:"description" validate:"required,max=500"`
	Image         string   `json:"image" validate:"required,url"`
	Status        string   `json:"status" validate:"omitempty,oneof=active inactive out-of-stock"`
	Featured      bool     `json:"featured"`
	Tags          []string `json:"tags"`
}

// UpdateProductInput is a partial product update; nil fields are left as-is.
type UpdateProductInput struct {
	Name          *string   `json:"name" validate:"omitempty,max=100"`
	Category      *string   `json:"category"`
	Price         *float64  `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice *float64  `json:"originalPrice"`
	Stock         *int      `json:"stock" validate:"omitempty,gte=0"`
	Description   *string   `json:"description" validate:"omitempty,max=500"`
	Image         *string   `json:"image" validate:"omitempty,url"`
	Status        *string   `json:"status" validate:"omitempty,oneof=active inactive out-of-stock"`
	Featured      *bool     `json:"featured"`
	Tags          *[]string `json:"tags"`
}

// AdminUsecase defines the admin console operations: dashboard analytics,
// product management and order management.
type AdminUsecase interface {
	// Dashboard computes analytics from the live order and product snapshots.
	Dashboard(ctx context.Context) (*Analytics, error)

	// Products returns the full product snapshot for the admin table.
	Products(ctx context.Context) ([]*entity.Product, error)

	// Orders returns every order, newest first.
	Orders(ctx context.Context) ([]*entity.Order, error)

	// AddProduct validates and persists a new product. The SKU is generated
	// when absent and search keywords are derived from name, category and tags.
	AddProduct(ctx context.Context, input NewProductInput) (*entity.Product, error)

	// UpdateProduct applies a partial update to a product.
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) error

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, id string) error

	// UpdateOrderStatus sets the lifecycle status of an order and publishes a
	// status-changed event.
	UpdateOrderStatus(ctx context.Context, id, status string) error

	// UpdatePaymentStatus sets the payment state of an order.
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error
}
