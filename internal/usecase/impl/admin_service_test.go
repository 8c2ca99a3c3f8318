package impl

import (
	"context"
	"strings"
	"testing"

	apperrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	svc       usecase.AdminUsecase
	products  *fakeProductRepo
	orders    *fakeOrderRepo
	publisher *fakePublisher
	snapshots *fakeSnapshots
}

func newAdminForTest(t *testing.T) *adminFixture {
	t.Helper()
	fixture := &adminFixture{
		products:  newFakeProductRepo(),
		orders:    newFakeOrderRepo(),
		publisher: &fakePublisher{},
		snapshots: &fakeSnapshots{},
	}
	fixture.svc = NewAdminService(AdminServiceParams{
		Snapshots:   fixture.snapshots,
		ProductRepo: fixture.products,
		OrderRepo:   fixture.orders,
		Publisher:   fixture.publisher,
		Config:      testConfig(),
		Logger:      testLogger(),
	})

	return fixture
}

func TestAggregate_RevenueCountsCompletedOnly(t *testing.T) {
	orders := []*entity.Order{
		{Status: "completed", Total: 100},
		{Status: "completed", Total: 50.5},
		{Status: entity.OrderStatusDelivered, Total: 999},
		{Status: entity.OrderStatusPending, Total: 10},
		{Status: entity.OrderStatusCancelled, Total: 75},
	}

	analytics := Aggregate(orders, nil)

	assert.Equal(t, 5, analytics.TotalOrders)
	assert.InDelta(t, 150.5, analytics.TotalRevenue, 0.001)
}

func TestAggregate_OrdersByStatusHistogram(t *testing.T) {
	orders := []*entity.Order{
		{Status: entity.OrderStatusPending},
		{Status: entity.OrderStatusPending},
		{Status: entity.OrderStatusShipped},
		{Status: "completed"},
	}

	analytics := Aggregate(orders, nil)

	assert.Equal(t, 2, analytics.OrdersByStatus[entity.OrderStatusPending])
	assert.Equal(t, 1, analytics.OrdersByStatus[entity.OrderStatusShipped])
	assert.Equal(t, 1, analytics.OrdersByStatus["completed"])
	assert.Equal(t, 0, analytics.OrdersByStatus[entity.OrderStatusDelivered])
}

func TestAggregate_TopProductsActiveByStock(t *testing.T) {
	products := []*entity.Product{
		{Name: "A", Status: entity.ProductStatusActive, Stock: 5},
		{Name: "B", Status: entity.ProductStatusActive, Stock: 90},
		{Name: "C", Status: entity.ProductStatusInactive, Stock: 500},
		{Name: "D", Status: entity.ProductStatusActive, Stock: 40},
		{Name: "E", Status: entity.ProductStatusActive, Stock: 70},
		{Name: "F", Status: entity.ProductStatusActive, Stock: 60},
		{Name: "G", Status: entity.ProductStatusActive, Stock: 80},
	}

	analytics := Aggregate(nil, products)

	require.Len(t, analytics.TopProducts, 5)
	assert.Equal(t, "B", analytics.TopProducts[0].Name)
	assert.Equal(t, "G", analytics.TopProducts[1].Name)
	// The inactive product is excluded no matter its stock.
	for _, p := range analytics.TopProducts {
		assert.NotEqual(t, "C", p.Name)
	}
	assert.Equal(t, 6, analytics.ActiveProducts)
	assert.Equal(t, 7, analytics.TotalProducts)
}

func TestAggregate_LowStockIncludesAnyStatus(t *testing.T) {
	products := []*entity.Product{
		{Name: "Scarce", Status: entity.ProductStatusActive, Stock: 3},
		{Name: "Retired", Status: entity.ProductStatusInactive, Stock: 0},
		{Name: "Plenty", Status: entity.ProductStatusActive, Stock: 10},
	}

	analytics := Aggregate(nil, products)

	require.Len(t, analytics.LowStock, 2)
	names := []string{analytics.LowStock[0].Name, analytics.LowStock[1].Name}
	assert.Contains(t, names, "Scarce")
	assert.Contains(t, names, "Retired")
}

func TestAggregate_EmptyInputs(t *testing.T) {
	analytics := Aggregate(nil, nil)

	assert.Zero(t, analytics.TotalOrders)
	assert.Zero(t, analytics.TotalRevenue)
	assert.NotNil(t, analytics.OrdersByStatus)
	assert.Empty(t, analytics.TopProducts)
	assert.Empty(t, analytics.LowStock)
}

func TestAddProduct_GeneratesSKUAndKeywords(t *testing.T) {
	fixture := newAdminForTest(t)

	product, err := fixture.svc.AddProduct(context.Background(), usecase.NewProductInput{
		Name:        "Trail Running Shoes",
		Category:    "sports",
		Price:       89.99,
		Stock:       25,
		Description: "Lightweight shoes for rough terrain",
		Image:       "https://img.example.com/shoes.png",
		Tags:        []string{"running", "outdoor"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.True(t, strings.HasPrefix(product.SKU, "SP-TRA-"), "got SKU %q", product.SKU)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
	assert.Equal(t, 89.99, product.OriginalPrice)
	assert.Contains(t, product.SearchKeywords, "trail")
	assert.Contains(t, product.SearchKeywords, "sports")
	assert.Contains(t, product.SearchKeywords, "outdoor")
	assert.False(t, product.CreatedAt.IsZero())
}

func TestAddProduct_RejectsInvalidInput(t *testing.T) {
	fixture := newAdminForTest(t)

	_, err := fixture.svc.AddProduct(context.Background(), usecase.NewProductInput{
		Name:     "No description or image",
		Category: "home",
		Price:    -5,
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAddProduct_CanonicalizesLegacyCategoryName(t *testing.T) {
	fixture := newAdminForTest(t)

	product, err := fixture.svc.AddProduct(context.Background(), usecase.NewProductInput{
		Name:        "Bookshelf",
		Category:    "Home",
		Price:       120,
		Description: "Five shelves of solid pine",
		Image:       "https://img.example.com/shelf.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "home", product.Category)
}

func TestUpdateProduct_RebuildsKeywordsWhenNameChanges(t *testing.T) {
	fixture := newAdminForTest(t)
	existing := fixture.products.add(&entity.Product{
		Name:           "Old Name",
		Category:       "books",
		Tags:           []string{"fiction"},
		SearchKeywords: entity.SearchTokens("Old Name", "books", []string{"fiction"}),
		Status:         entity.ProductStatusActive,
	})

	newName := "Paperback Anthology"
	err := fixture.svc.UpdateProduct(context.Background(), existing.ID, usecase.UpdateProductInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Paperback Anthology", existing.Name)
	assert.Contains(t, existing.SearchKeywords, "paperback")
	assert.Contains(t, existing.SearchKeywords, "books")
	assert.Contains(t, existing.SearchKeywords, "fiction")
}

func TestUpdateProduct_PriceOnlyLeavesKeywordsAlone(t *testing.T) {
	fixture := newAdminForTest(t)
	existing := fixture.products.add(&entity.Product{
		Name:           "Lamp",
		SearchKeywords: []string{"lamp"},
		Status:         entity.ProductStatusActive,
	})

	newPrice := 42.0
	err := fixture.svc.UpdateProduct(context.Background(), existing.ID, usecase.UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 42.0, existing.Price)
	assert.Equal(t, []string{"lamp"}, existing.SearchKeywords)
}

func TestUpdateProduct_UnknownID(t *testing.T) {
	fixture := newAdminForTest(t)

	err := fixture.svc.UpdateProduct(context.Background(), "missing", usecase.UpdateProductInput{})

	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestUpdateOrderStatus_PublishesEvent(t *testing.T) {
	fixture := newAdminForTest(t)
	id, err := fixture.orders.Create(context.Background(), &entity.Order{
		OrderNumber: "ORD-1000",
		UserID:      "user-1",
		Status:      entity.OrderStatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, fixture.svc.UpdateOrderStatus(context.Background(), id, entity.OrderStatusShipped))

	order, err := fixture.orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, order.Status)

	require.Len(t, fixture.publisher.events, 1)
	event := fixture.publisher.events[0]
	assert.Equal(t, service.OrderEventStatusChanged, event.Type)
	assert.Equal(t, "ORD-1000", event.OrderNumber)
	assert.Equal(t, entity.OrderStatusShipped, event.Status)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	fixture := newAdminForTest(t)
	id, err := fixture.orders.Create(context.Background(), &entity.Order{Status: entity.OrderStatusPending})
	require.NoError(t, err)

	err = fixture.svc.UpdateOrderStatus(context.Background(), id, "misplaced")

	assert.ErrorIs(t, err, apperrors.ErrOrderStatusInvalid)
}

func TestUpdateOrderStatus_PublishFailureDoesNotFailUpdate(t *testing.T) {
	fixture := newAdminForTest(t)
	fixture.publisher.err = assert.AnError
	id, err := fixture.orders.Create(context.Background(), &entity.Order{Status: entity.OrderStatusPending})
	require.NoError(t, err)

	require.NoError(t, fixture.svc.UpdateOrderStatus(context.Background(), id, entity.OrderStatusConfirmed))

	order, err := fixture.orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
}

func TestDashboard_UsesSnapshots(t *testing.T) {
	fixture := newAdminForTest(t)
	fixture.snapshots.orders = []*entity.Order{{Status: "completed", Total: 30}}
	fixture.snapshots.products = []*entity.Product{{Status: entity.ProductStatusActive, Stock: 2}}

	analytics, err := fixture.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, analytics.TotalOrders)
	assert.InDelta(t, 30, analytics.TotalRevenue, 0.001)
	assert.Len(t, analytics.LowStock, 1)
}

func TestGenerateSKU_Shape(t *testing.T) {
	sku := GenerateSKU("Trail Running Shoes", "sports")

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "SP", parts[0])
	assert.Equal(t, "TRA", parts[1])
	assert.Len(t, parts[2], 4)
}

func TestGenerateSKU_ShortName(t *testing.T) {
	sku := GenerateSKU("Ox", "books")

	assert.True(t, strings.HasPrefix(sku, "BO-OX-"), "got %q", sku)
}
