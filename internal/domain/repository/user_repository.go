// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when creating a user with an email that is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their document ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user and returns the assigned document ID.
	// Returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *entity.User) (string, error)

	// Update modifies an existing user document.
	Update(ctx context.Context, user *entity.User) error
}
