package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// SignUp handles the account registration request.
func (h *UserHandler) SignUp(c echo.Context) error {
	var input usecase.SignUpInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.SignUp(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	// The user entity hides its password hash from JSON; tokens ride alongside.
	return response.Success(c, http.StatusCreated, map[string]any{
		"user":         output.User,
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
	}, "Account created successfully")
}

// SignIn handles the login request.
func (h *UserHandler) SignIn(c echo.Context) error {
	var input usecase.SignInInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.SignIn(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user":         output.User,
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
	}, "Login successful")
}

// Refresh handles exchanging a refresh token for a new access token.
func (h *UserHandler) Refresh(c echo.Context) error {
	var input usecase.RefreshInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}

	accessToken, err := h.uc.Refresh(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"accessToken": accessToken,
	}, "Token refreshed successfully")
}

// SignOut revokes the refresh token supplied in the body. The response does
// not distinguish between revoked and already-invalid tokens.
func (h *UserHandler) SignOut(c echo.Context) error {
	var input usecase.RefreshInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign out input")
	}

	if err := h.uc.SignOut(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Signed out successfully")
}

// RequestPasswordReset handles starting a password reset flow. The response
// is identical for known and unknown emails.
func (h *UserHandler) RequestPasswordReset(c echo.Context) error {
	var input usecase.ResetRequestInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset request input")
	}

	// The token would normally leave via email; the demo returns it inline.
	token, err := h.uc.RequestPasswordReset(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	data := map[string]string{}
	if token != "" {
		data["resetToken"] = token
	}

	return response.Success(c, http.StatusOK, data, "If the email is registered, a reset token has been issued")
}

// ConfirmPasswordReset handles completing a password reset with the token.
func (h *UserHandler) ConfirmPasswordReset(c echo.Context) error {
	var input usecase.ResetConfirmInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset confirmation input")
	}

	if err := h.uc.ConfirmPasswordReset(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset successfully")
}
