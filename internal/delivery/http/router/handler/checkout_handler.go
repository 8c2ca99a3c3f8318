package handler

import (
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CheckoutHandler holds dependencies for checkout and order handlers.
type CheckoutHandler struct {
	checkout usecase.CheckoutUsecase
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(checkout usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// PlaceOrder handles turning the current cart into an order.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	var input usecase.CheckoutInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	output, err := h.checkout.PlaceOrder(c.Request().Context(), middleware.UserID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Order placed successfully")
}

// ListOrders handles the order history request.
func (h *CheckoutHandler) ListOrders(c echo.Context) error {
	orders, err := h.checkout.ListOrders(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// GetOrder handles the order detail request. Orders belonging to other
// accounts read as not found.
func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	order, err := h.checkout.GetOrder(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// OrderQR renders the order tracking QR code as a PNG image.
func (h *CheckoutHandler) OrderQR(c echo.Context) error {
	png, err := h.checkout.OrderQR(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
