package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the admin console handlers.
// Every route is behind authentication plus the admin role.
type AdminHandler struct {
	admin usecase.AdminUsecase
	hero  usecase.HeroUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(admin usecase.AdminUsecase, hero usecase.HeroUsecase) *AdminHandler {
	return &AdminHandler{
		admin: admin,
		hero:  hero,
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// Dashboard handles the analytics dashboard request.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	analytics, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, analytics, "")
}

// ListProducts handles the admin product table request.
func (h *AdminHandler) ListProducts(c echo.Context) error {
	products, err := h.admin.Products(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// ListOrders handles the admin order table request.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.admin.Orders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// AddProduct handles creating a product from the admin console.
func (h *AdminHandler) AddProduct(c echo.Context) error {
	var input usecase.NewProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.admin.AddProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// UpdateProduct handles a partial product update.
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var input usecase.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := h.admin.UpdateProduct(c.Request().Context(), c.Param("id"), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product updated successfully")
}

// DeleteProduct handles removing a product.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.admin.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// UpdateOrderStatus handles an order lifecycle transition.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var input updateOrderStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order status input")
	}

	if err := h.admin.UpdateOrderStatus(c.Request().Context(), c.Param("id"), input.Status); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order status updated")
}

// UpdatePaymentStatus handles a payment state change.
func (h *AdminHandler) UpdatePaymentStatus(c echo.Context) error {
	var input updatePaymentStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment status input")
	}

	if err := h.admin.UpdatePaymentStatus(c.Request().Context(), c.Param("id"), input.PaymentStatus); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Payment status updated")
}

// AddHeroProduct handles inserting a product into the landing page carousel.
func (h *AdminHandler) AddHeroProduct(c echo.Context) error {
	if err := h.hero.Add(c.Request().Context(), c.Param("productId")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product added to hero carousel")
}

// RemoveHeroProduct handles taking a product out of the carousel.
func (h *AdminHandler) RemoveHeroProduct(c echo.Context) error {
	if err := h.hero.Remove(c.Request().Context(), c.Param("productId")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product removed from hero carousel")
}
