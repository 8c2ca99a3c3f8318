package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	svc       usecase.CheckoutUsecase
	carts     *fakeCartRepo
	orders    *fakeOrderRepo
	publisher *fakePublisher
}

func newCheckoutForTest(t *testing.T) *checkoutFixture {
	t.Helper()
	fixture := &checkoutFixture{
		carts:     newFakeCartRepo(),
		orders:    newFakeOrderRepo(),
		publisher: &fakePublisher{},
	}
	fixture.svc = NewCheckoutService(CheckoutServiceParams{
		CartRepo:  fixture.carts,
		OrderRepo: fixture.orders,
		Publisher: fixture.publisher,
		QRCode:    fakeQRCode{},
		Config:    testConfig(),
		Logger:    testLogger(),
	})

	return fixture
}

func stockCart(t *testing.T, carts *fakeCartRepo, userID string, items ...entity.CartItem) {
	t.Helper()
	require.NoError(t, carts.Put(context.Background(), &entity.Cart{UserID: userID, Items: items}))
}

func TestPlaceOrder_ComputesTotals(t *testing.T) {
	fixture := newCheckoutForTest(t)
	stockCart(t, fixture.carts, "user-1",
		entity.CartItem{ProductID: "p1", Name: "Mug", UnitPrice: 10, Quantity: 2},
		entity.CartItem{ProductID: "p2", Name: "Pen", UnitPrice: 2.5, Quantity: 4},
	)

	out, err := fixture.svc.PlaceOrder(context.Background(), "user-1", usecase.CheckoutInput{
		CustomerName:  "Ada Example",
		CustomerEmail: "ada@example.com",
	})
	require.NoError(t, err)

	order, err := fixture.orders.FindByID(context.Background(), out.OrderID)
	require.NoError(t, err)

	// Subtotal 30, 8% tax 2.40, flat shipping 5 (below the threshold of 50).
	assert.InDelta(t, 30.0, order.Subtotal, 0.001)
	assert.InDelta(t, 2.4, order.Tax, 0.001)
	assert.InDelta(t, 5.0, order.Shipping, 0.001)
	assert.InDelta(t, 37.4, order.Total, 0.001)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, order.Items, 2)
}

func TestPlaceOrder_FreeShippingAboveThreshold(t *testing.T) {
	fixture := newCheckoutForTest(t)
	stockCart(t, fixture.carts, "user-1",
		entity.CartItem{ProductID: "p1", Name: "Desk", UnitPrice: 60, Quantity: 1},
	)

	out, err := fixture.svc.PlaceOrder(context.Background(), "user-1", usecase.CheckoutInput{
		CustomerName:  "Ada Example",
		CustomerEmail: "ada@example.com",
	})
	require.NoError(t, err)

	order, err := fixture.orders.FindByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Zero(t, order.Shipping)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	fixture := newCheckoutForTest(t)

	_, err := fixture.svc.PlaceOrder(context.Background(), "user-1", usecase.CheckoutInput{
		CustomerName:  "Ada Example",
		CustomerEmail: "ada@example.com",
	})

	assert.ErrorIs(t, err, apperrors.ErrCartEmpty)
}

func TestPlaceOrder_ClearsCartAndPublishes(t *testing.T) {
	fixture := newCheckoutForTest(t)
	stockCart(t, fixture.carts, "user-1",
		entity.CartItem{ProductID: "p1", Name: "Mug", UnitPrice: 10, Quantity: 1},
	)

	out, err := fixture.svc.PlaceOrder(context.Background(), "user-1", usecase.CheckoutInput{
		CustomerName:  "Ada Example",
		CustomerEmail: "ada@example.com",
	})
	require.NoError(t, err)

	cart, err := fixture.carts.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	require.Len(t, fixture.publisher.events, 1)
	event := fixture.publisher.events[0]
	assert.Equal(t, service.OrderEventCreated, event.Type)
	assert.Equal(t, out.OrderID, event.OrderID)
	assert.Equal(t, out.OrderNumber, event.OrderNumber)
}

func TestPlaceOrder_OrderNumberShape(t *testing.T) {
	fixture := newCheckoutForTest(t)
	stockCart(t, fixture.carts, "user-1",
		entity.CartItem{ProductID: "p1", Name: "Mug", UnitPrice: 10, Quantity: 1},
	)

	out, err := fixture.svc.PlaceOrder(context.Background(), "user-1", usecase.CheckoutInput{
		CustomerName:  "Ada Example",
		CustomerEmail: "ada@example.com",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.OrderNumber, "ORD-"), "got %q", out.OrderNumber)
}

func TestPlaceOrder_RejectsInvalidInput(t *testing.T) {
	fixture := newCheckoutForTest(t)
	stockCart(t, fixture.carts, "user-1",
		entity.CartItem{ProductID: "p1", Name: "Mug", UnitPrice: 10, Quantity: 1},
	)

	_, err := fixture.svc.PlaceOrder(context.Background(), "user-1", usecase.CheckoutInput{
		CustomerName:  "Ada Example",
		CustomerEmail: "not-an-email",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetOrder_OwnershipEnforced(t *testing.T) {
	fixture := newCheckoutForTest(t)
	id, err := fixture.orders.Create(context.Background(), &entity.Order{
		UserID:    "owner",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = fixture.svc.GetOrder(context.Background(), "intruder", id)

	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
}

func TestOrderQR_EncodesOrderNumber(t *testing.T) {
	fixture := newCheckoutForTest(t)
	id, err := fixture.orders.Create(context.Background(), &entity.Order{
		UserID:      "user-1",
		OrderNumber: "ORD-42",
	})
	require.NoError(t, err)

	png, err := fixture.svc.OrderQR(context.Background(), "user-1", id)
	require.NoError(t, err)

	assert.Equal(t, []byte("qr:ORD-42"), png)
}

func TestOrderNumber_UsesMillisecondTimestamp(t *testing.T) {
	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "ORD-1751371200000", orderNumber(at))
}
