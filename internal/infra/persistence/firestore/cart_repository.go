package firestore

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// cartRepository implements repository.CartRepository on Firestore.
// One document per user, keyed by the user ID.
type cartRepository struct {
	client *firestore.Client
}

// cartDocument is the stored shape of a cart. UpdatedAt exists for
// housekeeping queries only; the domain entity does not carry it.
type cartDocument struct {
	Items     []entity.CartItem `firestore:"items"`
	UpdatedAt time.Time         `firestore:"updatedAt"`
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(client *firestore.Client) repository.CartRepository {
	return &cartRepository{client: client}
}

func (repo *cartRepository) doc(userID string) *firestore.DocumentRef {
	return repo.client.Collection(cartsCollection).Doc(userID)
}

// Get retrieves the cart for a user. A missing document is a valid state
// and reads as an empty cart.
func (repo *cartRepository) Get(ctx context.Context, userID string) (*entity.Cart, error) {
	snap, err := repo.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &entity.Cart{UserID: userID}, nil
		}

		return nil, errors.Wrap(err, "failed to get cart")
	}

	var doc cartDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrapf(err, "failed to decode cart %s", userID)
	}

	return &entity.Cart{
		UserID: userID,
		Items:  doc.Items,
	}, nil
}

// Put replaces the stored item list with the given cart's items.
func (repo *cartRepository) Put(ctx context.Context, cart *entity.Cart) error {
	doc := cartDocument{
		Items:     cart.Items,
		UpdatedAt: time.Now(),
	}
	if doc.Items == nil {
		doc.Items = []entity.CartItem{}
	}

	if _, err := repo.doc(cart.UserID).Set(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to store cart")
	}

	return nil
}

// Clear empties the cart for a user.
func (repo *cartRepository) Clear(ctx context.Context, userID string) error {
	return repo.Put(ctx, &entity.Cart{UserID: userID})
}
