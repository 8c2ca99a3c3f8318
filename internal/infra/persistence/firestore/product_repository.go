package firestore

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// productRepository implements repository.ProductRepository on Firestore.
type productRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(client *firestore.Client, logger *slog.Logger) repository.ProductRepository {
	return &productRepository{
		client: client,
		logger: logger,
	}
}

func (repo *productRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(productsCollection)
}

// FetchActive runs the indexed storefront query: active products, newest
// first. Firestore rejects the query with FailedPrecondition while the
// composite index is missing or still building; that is surfaced as
// ErrIndexUnavailable so callers can fall back to FetchAll.
func (repo *productRepository) FetchActive(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := repo.collection().
		Where("status", "==", entity.ProductStatusActive).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)

	products, err := repo.queryProducts(ctx, query)
	if err != nil {
		if status.Code(errors.Cause(err)) == codes.FailedPrecondition {
			return nil, repository.ErrIndexUnavailable
		}

		return nil, errors.Wrap(err, "failed to fetch active products")
	}

	return products, nil
}

// FetchAll is the unindexed fallback tier: no status filter, no ordering.
func (repo *productRepository) FetchAll(ctx context.Context, limit int) ([]*entity.Product, error) {
	products, err := repo.queryProducts(ctx, repo.collection().Query.Limit(limit))
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch products")
	}

	return products, nil
}

// FindByID retrieves a single product document.
func (repo *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return decodeProduct(doc)
}

// Create persists a new product and returns the assigned document ID.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) (string, error) {
	ref, _, err := repo.collection().Add(ctx, product)
	if err != nil {
		return "", errors.Wrap(err, "failed to create product")
	}

	return ref.ID, nil
}

// UpdateFields applies a partial field update to a product document.
func (repo *productRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := repo.collection().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to update product fields")
	}

	return nil
}

// Delete removes a product document.
func (repo *productRepository) Delete(ctx context.Context, id string) error {
	if _, err := repo.collection().Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// FindHero retrieves carousel members ordered by slot. The ordered query
// needs its own composite index, so the same ErrIndexUnavailable mapping
// applies as for FetchActive.
func (repo *productRepository) FindHero(ctx context.Context, max int) ([]*entity.Product, error) {
	query := repo.collection().
		Where("heroCarousel", "==", true).
		OrderBy("heroCarouselOrder", firestore.Asc).
		Limit(max)

	products, err := repo.queryProducts(ctx, query)
	if err != nil {
		if status.Code(errors.Cause(err)) == codes.FailedPrecondition {
			return nil, repository.ErrIndexUnavailable
		}

		return nil, errors.Wrap(err, "failed to fetch hero carousel")
	}

	return products, nil
}

// FindFeaturedActive retrieves featured active products with no ordering.
func (repo *productRepository) FindFeaturedActive(ctx context.Context, max int) ([]*entity.Product, error) {
	query := repo.collection().
		Where("featured", "==", true).
		Where("status", "==", entity.ProductStatusActive).
		Limit(max)

	products, err := repo.queryProducts(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch featured products")
	}

	return products, nil
}

// Watch opens a live feed of whole-collection product snapshots.
func (repo *productRepository) Watch(ctx context.Context) (repository.Subscription[[]*entity.Product], error) {
	sub := watchQuery(ctx, repo.collection().Query, repo.logger, decodeProduct)

	return sub, nil
}

func (repo *productRepository) queryProducts(ctx context.Context, query firestore.Query) ([]*entity.Product, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var products []*entity.Product
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}

		product, err := decodeProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// decodeProduct maps a document snapshot to the domain entity. CreatedAt on
// legacy documents may be absent; it decodes to the zero time so the catalog
// sorts those documents last.
func decodeProduct(doc *firestore.DocumentSnapshot) (*entity.Product, error) {
	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Wrapf(err, "failed to decode product %s", doc.Ref.ID)
	}
	product.ID = doc.Ref.ID

	return &product, nil
}
