package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
type SignUpInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignInInput defines the data required to log in.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries a refresh token to exchange for new tokens.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ResetRequestInput starts a password reset for an email address.
type ResetRequestInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetConfirmInput completes a password reset with the issued token.
type ResetConfirmInput struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// --- Output DTOs ---

// SignUpOutput returns the newly created account and its first token pair.
type SignUpOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// SignInOutput returns the generated tokens after a successful login.
type SignInOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for account business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	SignUp(ctx context.Context, input SignUpInput) (*SignUpOutput, error)
	SignIn(ctx context.Context, input SignInInput) (*SignInOutput, error)
	// Refresh exchanges the account's current refresh token for a new access
	// token. The refresh token itself is not rotated, but it must still be
	// the one most recently issued for the account.
	Refresh(ctx context.Context, input RefreshInput) (string, error)

	// SignOut revokes the account's current refresh token. Signing out with
	// an already-revoked or unknown token is not an error.
	SignOut(ctx context.Context, input RefreshInput) error

	// RequestPasswordReset issues a time-limited reset token. It succeeds
	// silently for unknown emails so the endpoint cannot be used to probe
	// registered addresses; the token is returned for delivery by the caller.
	RequestPasswordReset(ctx context.Context, input ResetRequestInput) (string, error)

	// ConfirmPasswordReset replaces the password when the token matches and
	// has not expired.
	ConfirmPasswordReset(ctx context.Context, input ResetConfirmInput) error
}
