package firestore

import (
	"context"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// userRepository implements repository.UserRepository on Firestore.
type userRepository struct {
	client *firestore.Client
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (repo *userRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(usersCollection)
}

// FindByID retrieves a single user document.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return decodeUser(doc)
}

// FindByEmail retrieves a single user by their email address.
// Emails are stored lowercased, so the lookup lowercases too.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := repo.collection().
		Where("email", "==", strings.ToLower(email)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return decodeUser(doc)
}

// Create persists a new user and returns the assigned document ID.
// The uniqueness check and the insert are two separate operations, so a
// concurrent signup with the same email can slip through; the storefront
// accepts that window rather than maintaining a dedicated email index.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	user.Email = strings.ToLower(user.Email)

	if _, err := repo.FindByEmail(ctx, user.Email); err == nil {
		return "", repository.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return "", err
	}

	ref, _, err := repo.collection().Add(ctx, user)
	if err != nil {
		return "", errors.Wrap(err, "failed to create user")
	}

	return ref.ID, nil
}

// Update replaces an existing user document.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	if _, err := repo.collection().Doc(user.ID).Set(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update user")
	}

	return nil
}

func decodeUser(doc *firestore.DocumentSnapshot) (*entity.User, error) {
	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Wrapf(err, "failed to decode user %s", doc.Ref.ID)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}
