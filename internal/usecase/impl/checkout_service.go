package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
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

type checkoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	publisher service.EventPublisher
	qrcode    service.QRCodeService
	validate  *validator.Validate
	cfg       *config.Config
	logger    *slog.Logger
	now       func() time.Time
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	CartRepo  repository.CartRepository
	OrderRepo repository.OrderRepository
	Publisher service.EventPublisher
	QRCode    service.QRCodeService
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service instance
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		cartRepo:  params.CartRepo,
		orderRepo: params.OrderRepo,
		publisher: params.Publisher,
		qrcode:    params.QRCode,
		validate:  validator.New(),
		cfg:       params.Config,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// PlaceOrder converts the user's cart into an order. Payment is simulated:
// the order is created as pending and the cart is cleared in the same flow.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID string, input usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetails(err.Error())
	}

	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrCartEmpty
	}

	now := s.now()
	items := make([]entity.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, entity.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	subtotal := cart.Subtotal()
	tax := roundCents(subtotal * s.cfg.Checkout.TaxRate)
	shipping := s.cfg.Checkout.ShippingFlat
	if subtotal >= s.cfg.Checkout.FreeShippingThreshold {
		shipping = 0
	}

	order := &entity.Order{
		OrderNumber:   orderNumber(now),
		UserID:        userID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Shipping:      shipping,
		Total:         roundCents(subtotal + tax + shipping),
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}
	order.ID = id

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		// The order exists; a stale cart is recoverable, a lost order is not.
		s.logger.Warn("failed to clear cart after checkout",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	if err := s.publisher.PublishOrderEvent(ctx, &service.OrderEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        service.OrderEventCreated,
		OrderID:     id,
		OrderNumber: order.OrderNumber,
		UserID:      userID,
		Status:      order.Status,
		Total:       order.Total,
	}); err != nil {
		s.logger.Warn("failed to publish order created event",
			slog.String("order_id", id),
			slog.Any("error", err),
		)
	}

	return &usecase.CheckoutOutput{
		OrderID:     id,
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
	}, nil
}

// GetOrder returns a single order, restricted to its owner.
func (s *checkoutService) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}
	if order.UserID != userID {
		return nil, apperrors.ErrOrderNotFound
	}

	return order, nil
}

func (s *checkoutService) ListOrders(ctx context.Context, userID string) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// OrderQR renders a PNG QR code pointing at the order's tracking page.
func (s *checkoutService) OrderQR(ctx context.Context, userID, orderID string) ([]byte, error) {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := s.qrcode.GenerateOrderQR(order.OrderNumber)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate order qr code")
	}

	return png, nil
}

// orderNumber derives a human-readable order number from the creation time,
// e.g. ORD-1735689600000.
func orderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%d", t.UnixMilli())
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
