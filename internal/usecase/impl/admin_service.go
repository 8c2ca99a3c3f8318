package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	apperrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Analytics policy knobs. The low-stock floor and top-product count follow
// the admin dashboard contract.
const (
	lowStockFloor    = 10
	topProductsCount = 5
)

var validOrderStatuses = []string{
	entity.OrderStatusPending,
	entity.OrderStatusConfirmed,
	entity.OrderStatusShipped,
	entity.OrderStatusDelivered,
	entity.OrderStatusCancelled,
	entity.OrderStatusCompleted,
}

var validPaymentStatuses = []string{
	entity.PaymentStatusPending,
	entity.PaymentStatusCompleted,
	entity.PaymentStatusFailed,
	entity.PaymentStatusRefunded,
}

type adminService struct {
	snapshots   usecase.SnapshotCache
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	publisher   service.EventPublisher
	validate    *validator.Validate
	cfg         *config.Config
	logger      *slog.Logger
	now         func() time.Time
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	Snapshots   usecase.SnapshotCache
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAdminService creates a new admin service instance
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		snapshots:   params.Snapshots,
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		publisher:   params.Publisher,
		validate:    validator.New(),
		cfg:         params.Config,
		logger:      params.Logger,
		now:         time.Now,
	}
}

// Dashboard computes analytics from the live snapshots. The computation is a
// pure function of its inputs and is redone in full on every call.
func (s *adminService) Dashboard(ctx context.Context) (*usecase.Analytics, error) {
	return Aggregate(s.snapshots.Orders(), s.snapshots.Products()), nil
}

// Products returns the full product snapshot for the admin table.
func (s *adminService) Products(ctx context.Context) ([]*entity.Product, error) {
	return s.snapshots.Products(), nil
}

// Orders returns every order, newest first.
func (s *adminService) Orders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FetchAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch orders")
	}

	return orders, nil
}

// AddProduct validates and persists a new product.
func (s *adminService) AddProduct(ctx context.Context, input usecase.NewProductInput) (*entity.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetails(err.Error())
	}

	now := s.now()
	categoryID := entity.CanonicalCategoryID(input.Category)

	tags := input.Tags
	if len(tags) == 0 {
		tags = []string{categoryID}
	}

	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if sku == "" {
		sku = GenerateSKU(input.Name, categoryID)
	}

	status := input.Status
	if status == "" {
		status = entity.ProductStatusActive
	}

	originalPrice := input.OriginalPrice
	if originalPrice == 0 {
		originalPrice = input.Price
	}

	product := &entity.Product{
		Name:           strings.TrimSpace(input.Name),
		Category:       categoryID,
		Price:          input.Price,
		OriginalPrice:  originalPrice,
		Stock:          input.Stock,
		SKU:            sku,
		Description:    strings.TrimSpace(input.Description),
		Image:          strings.TrimSpace(input.Image),
		Status:         status,
		Featured:       input.Featured,
		Tags:           tags,
		SearchKeywords: entity.SearchTokens(input.Name, categoryID, tags),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}
	product.ID = id

	return product, nil
}

// UpdateProduct applies a partial update. Search keywords are rebuilt when
// any of their source fields change.
func (s *adminService) UpdateProduct(ctx context.Context, id string, input usecase.UpdateProductInput) error {
	if err := s.validate.Struct(input); err != nil {
		return apperrors.ErrValidationFailed.WithDetails(err.Error())
	}

	current, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return apperrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to find product by id")
	}

	fields := map[string]any{"updatedAt": s.now()}
	name, category, tags := current.Name, current.Category, current.Tags
	rebuildKeywords := false

	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		fields["name"] = name
		rebuildKeywords = true
	}
	if input.Category != nil {
		category = entity.CanonicalCategoryID(*input.Category)
		fields["category"] = category
		rebuildKeywords = true
	}
	if input.Tags != nil {
		tags = *input.Tags
		fields["tags"] = tags
		rebuildKeywords = true
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.OriginalPrice != nil {
		fields["originalPrice"] = *input.OriginalPrice
	}
	if input.Stock != nil {
		fields["stock"] = *input.Stock
	}
	if input.Description != nil {
		fields["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		fields["image"] = strings.TrimSpace(*input.Image)
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.Featured != nil {
		fields["featured"] = *input.Featured
	}
	if rebuildKeywords {
		fields["searchKeywords"] = entity.SearchTokens(name, category, tags)
	}

	if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

// DeleteProduct removes a product.
func (s *adminService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return apperrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// UpdateOrderStatus sets the lifecycle status of an order and publishes a
// status-changed event. Publication failure is logged, never surfaced.
func (s *adminService) UpdateOrderStatus(ctx context.Context, id, status string) error {
	if !contains(validOrderStatuses, status) {
		return apperrors.ErrOrderStatusInvalid.WithDetails(status)
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return apperrors.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to find order by id")
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return errors.Wrap(err, "failed to update order status")
	}

	if err := s.publisher.PublishOrderEvent(ctx, &service.OrderEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        service.OrderEventStatusChanged,
		OrderID:     id,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      status,
	}); err != nil {
		s.logger.Warn("failed to publish order status event",
			slog.String("order_id", id),
			slog.Any("error", err),
		)
	}

	return nil
}

// UpdatePaymentStatus sets the payment state of an order.
func (s *adminService) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	if !contains(validPaymentStatuses, paymentStatus) {
		return apperrors.ErrOrderStatusInvalid.WithDetails(paymentStatus)
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return apperrors.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to find order by id")
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, id, paymentStatus); err != nil {
		return errors.Wrap(err, "failed to update payment status")
	}

	if err := s.publisher.PublishOrderEvent(ctx, &service.OrderEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        service.OrderEventPaymentUpdate,
		OrderID:     id,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      paymentStatus,
	}); err != nil {
		s.logger.Warn("failed to publish payment status event",
			slog.String("order_id", id),
			slog.Any("error", err),
		)
	}

	return nil
}

// Aggregate derives the dashboard metrics from the order and product
// snapshots. It reads its inputs but never mutates them, and it is total:
// empty inputs yield zeroed metrics.
//
// Revenue counts orders with status "completed" only; pending, shipped and
// cancelled orders are excluded by policy, not oversight. TopProducts ranks
// active products by stock level, a proxy the dashboard uses in place of a
// sales-based ranking.
func Aggregate(orders []*entity.Order, products []*entity.Product) *usecase.Analytics {
	analytics := &usecase.Analytics{
		TotalOrders:    len(orders),
		TotalProducts:  len(products),
		OrdersByStatus: make(map[string]int, 6),
		TopProducts:    []*entity.Product{},
		LowStock:       []*entity.Product{},
	}

	for _, order := range orders {
		analytics.OrdersByStatus[order.Status]++
		if order.Status == entity.OrderStatusCompleted {
			analytics.TotalRevenue += order.Total
		}
	}

	active := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.Status == entity.ProductStatusActive {
			analytics.ActiveProducts++
			active = append(active, p)
		}
		if p.Stock < lowStockFloor {
			analytics.LowStock = append(analytics.LowStock, p)
		}
	}

	sort.SliceStable(active, func(i, j int) bool { return active[i].Stock > active[j].Stock })
	if len(active) > topProductsCount {
		active = active[:topProductsCount]
	}
	analytics.TopProducts = active

	return analytics
}

// GenerateSKU builds a SKU of the form CA-NAM-0042 from the category and
// product name plus a random numeric suffix.
func GenerateSKU(name, category string) string {
	namePrefix := make([]rune, 0, 3)
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			namePrefix = append(namePrefix, r)
			if len(namePrefix) == 3 {
				break
			}
		}
	}

	categoryPrefix := strings.ToUpper(category)
	if len(categoryPrefix) > 2 {
		categoryPrefix = categoryPrefix[:2]
	}

	return fmt.Sprintf("%s-%s-%04d", categoryPrefix, string(namePrefix), rand.Intn(10000))
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}

	return false
}
