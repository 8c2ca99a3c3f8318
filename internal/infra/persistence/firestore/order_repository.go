package firestore

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// orderRepository implements repository.OrderRepository on Firestore.
type orderRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(client *firestore.Client, logger *slog.Logger) repository.OrderRepository {
	return &orderRepository{
		client: client,
		logger: logger,
	}
}

func (repo *orderRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(ordersCollection)
}

// Create persists a new order and returns the assigned document ID.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) (string, error) {
	ref, _, err := repo.collection().Add(ctx, order)
	if err != nil {
		return "", errors.Wrap(err, "failed to create order")
	}

	return ref.ID, nil
}

// FindByID retrieves a single order document.
func (repo *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return decodeOrder(doc)
}

// FindByUser retrieves a user's orders, newest first. The filter-plus-order
// combination would need a composite index, so the filter runs in the store
// and the ordering runs here.
func (repo *orderRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	query := repo.collection().Where("userId", "==", userID)

	orders, err := repo.queryOrders(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch orders by user")
	}

	sortNewestFirst(orders)

	return orders, nil
}

// FetchAll retrieves every order, newest first. Admin only.
func (repo *orderRepository) FetchAll(ctx context.Context) ([]*entity.Order, error) {
	query := repo.collection().OrderBy("createdAt", firestore.Desc)

	orders, err := repo.queryOrders(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch orders")
	}

	return orders, nil
}

// UpdateStatus sets the lifecycle status of an order.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id, orderStatus string) error {
	return repo.updateFields(ctx, id, []firestore.Update{
		{Path: "status", Value: orderStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
}

// UpdatePaymentStatus sets the payment state of an order.
func (repo *orderRepository) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	return repo.updateFields(ctx, id, []firestore.Update{
		{Path: "paymentStatus", Value: paymentStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
}

// Delete removes an order document.
func (repo *orderRepository) Delete(ctx context.Context, id string) error {
	if _, err := repo.collection().Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}

// Watch opens a live feed of whole-collection order snapshots.
func (repo *orderRepository) Watch(ctx context.Context) (repository.Subscription[[]*entity.Order], error) {
	sub := watchQuery(ctx, repo.collection().Query, repo.logger, decodeOrder)

	return sub, nil
}

func (repo *orderRepository) updateFields(ctx context.Context, id string, updates []firestore.Update) error {
	if _, err := repo.collection().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to update order")
	}

	return nil
}

func (repo *orderRepository) queryOrders(ctx context.Context, query firestore.Query) ([]*entity.Order, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var orders []*entity.Order
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}

		order, err := decodeOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func sortNewestFirst(orders []*entity.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func decodeOrder(doc *firestore.DocumentSnapshot) (*entity.Order, error) {
	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Wrapf(err, "failed to decode order %s", doc.Ref.ID)
	}
	order.ID = doc.Ref.ID

	return &order, nil
}
