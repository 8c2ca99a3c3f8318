package handler

import (
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for the shopping cart handlers.
// All routes require authentication; the cart is keyed by the token subject.
type CartHandler struct {
	cart usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(cart usecase.CartUsecase) *CartHandler {
	return &CartHandler{cart: cart}
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles the cart page request.
func (h *CartHandler) GetCart(c echo.Context) error {
	view, err := h.cart.Get(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// AddItem handles adding a product to the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input addCartItemRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	view, err := h.cart.Add(c.Request().Context(), middleware.UserID(c), input.ProductID, input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Item added to cart")
}

// UpdateItem handles changing the quantity of a cart line.
// A quantity of zero removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var input updateCartItemRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	view, err := h.cart.UpdateQuantity(c.Request().Context(), middleware.UserID(c), c.Param("productId"), input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Cart updated")
}

// RemoveItem handles deleting a cart line.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	view, err := h.cart.Remove(c.Request().Context(), middleware.UserID(c), c.Param("productId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Item removed from cart")
}

// ClearCart handles emptying the cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	if err := h.cart.Clear(c.Request().Context(), middleware.UserID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}
