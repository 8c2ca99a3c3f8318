// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"storefront/config"
	apperrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo      repository.UserRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	validate      *validator.Validate
	resetTokenTTL time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:      params.UserRepo,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		validate:      validator.New(),
		resetTokenTTL: params.Config.Auth.ResetTokenTTL,
		logger:        params.Logger,
		now:           time.Now,
	}
}

// SignUp registers a new account and signs it in.
func (srv *userService) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetails(err.Error())
	}

	srv.logger.Info("Starting sign up", slog.String("email", input.Email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.logger.Warn("Password validation failed during sign up", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(apperrors.ErrValidationFailed, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during sign up", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during sign up")
	}

	now := srv.now()
	newUser := &entity.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		Roles:        []string{entity.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := srv.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user during sign up")
	}
	newUser.ID = id

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(newUser.ID, newUser.Roles)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	newUser.RefreshTokenHash = hashRefreshToken(refreshToken)
	newUser.UpdatedAt = srv.now()
	if err := srv.userRepo.Update(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	srv.logger.Debug("Sign up completed", slog.String("userID", newUser.ID))

	return &usecase.SignUpOutput{
		User:         newUser,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SignIn orchestrates the user login process.
func (srv *userService) SignIn(ctx context.Context, input usecase.SignInInput) (*usecase.SignInOutput, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetails(err.Error())
	}

	srv.logger.Debug("Starting sign in", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Warn("Sign in failed", slog.String("email", input.Email))

			return nil, apperrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// bcrypt is CPU-bound; compare before any further work.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.logger.Warn("Sign in failed", slog.String("email", input.Email))

		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Roles)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	// One live refresh token per account; a new sign-in supersedes the old one.
	user.RefreshTokenHash = hashRefreshToken(refreshToken)
	user.UpdatedAt = srv.now()
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	srv.logger.Debug("User signed in successfully", slog.String("userID", user.ID))

	return &usecase.SignInOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh issues a new access token from a valid refresh token. The refresh
// token itself is left unchanged.
func (srv *userService) Refresh(ctx context.Context, input usecase.RefreshInput) (string, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return "", apperrors.ErrRefreshTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperrors.ErrRefreshTokenInvalid
		}

		return "", errors.Wrap(err, "failed to find user for refresh")
	}

	// Reject tokens revoked by sign-out or superseded by a newer sign-in.
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != hashRefreshToken(input.RefreshToken) {
		return "", apperrors.ErrRefreshTokenInvalid
	}

	// Roles come from the store, not the old token, so role changes take
	// effect on the next refresh.
	accessToken, _, err := srv.tokenService.GenerateTokens(user.ID, user.Roles)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate new access token")
	}

	return accessToken, nil
}

// SignOut revokes the account's stored refresh token. Invalid or already
// revoked tokens are treated as a successful sign-out.
func (srv *userService) SignOut(ctx context.Context, input usecase.RefreshInput) error {
	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find user for sign out")
	}

	if user.RefreshTokenHash != hashRefreshToken(input.RefreshToken) {
		return nil
	}

	user.RefreshTokenHash = ""
	user.UpdatedAt = srv.now()
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to revoke refresh token")
	}

	srv.logger.Debug("User signed out", slog.String("userID", user.ID))

	return nil
}

// hashRefreshToken returns the digest stored in place of the raw refresh
// token, so a leaked user document cannot be replayed as a session.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// RequestPasswordReset issues a single-use reset token. Unknown emails get an
// empty token and no error, so the endpoint cannot be used to probe accounts.
func (srv *userService) RequestPasswordReset(ctx context.Context, input usecase.ResetRequestInput) (string, error) {
	if err := srv.validate.Struct(input); err != nil {
		return "", apperrors.ErrValidationFailed.WithDetails(err.Error())
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Info("Password reset requested for unknown email", slog.String("email", input.Email))

			return "", nil
		}

		return "", errors.Wrap(err, "failed to find user for password reset")
	}

	token := uuid.NewString()
	expires := srv.now().Add(srv.resetTokenTTL)
	user.ResetToken = token
	user.ResetExpires = &expires
	user.UpdatedAt = srv.now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return "", errors.Wrap(err, "failed to store reset token")
	}

	srv.logger.Info("Password reset token issued", slog.String("userID", user.ID))

	return token, nil
}

// ConfirmPasswordReset sets a new password when the supplied token matches
// and has not expired. The token is cleared on success.
func (srv *userService) ConfirmPasswordReset(ctx context.Context, input usecase.ResetConfirmInput) error {
	if err := srv.validate.Struct(input); err != nil {
		return apperrors.ErrValidationFailed.WithDetails(err.Error())
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperrors.ErrResetTokenInvalid
		}

		return errors.Wrap(err, "failed to find user for password reset")
	}

	if user.ResetToken == "" || user.ResetToken != input.Token {
		return apperrors.ErrResetTokenInvalid
	}
	if user.ResetExpires == nil || srv.now().After(*user.ResetExpires) {
		return apperrors.ErrResetTokenInvalid
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(apperrors.ErrValidationFailed, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	user.PasswordHash = hashedPassword
	user.ResetToken = ""
	user.ResetExpires = nil
	user.UpdatedAt = srv.now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.logger.Info("Password reset completed", slog.String("userID", user.ID))

	return nil
}
