// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for the storefront catalog handlers.
type CatalogHandler struct {
	catalog usecase.CatalogUsecase
	hero    usecase.HeroUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(catalog usecase.CatalogUsecase, hero usecase.HeroUsecase) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		hero:    hero,
	}
}

// ListProducts handles the filtered, sorted, paginated product listing.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	filter := usecase.CatalogFilter{
		Category:   c.QueryParam("category"),
		SearchTerm: c.QueryParam("search"),
		SortBy:     c.QueryParam("sort"),
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "minPrice must be a number")
		}
		filter.PriceMin = v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "maxPrice must be a number")
		}
		filter.PriceMax = v
	}
	if raw := c.QueryParam("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return response.BadRequest(c, "INVALID_INPUT", "page must be a positive integer")
		}
		filter.Page = v
	}

	page, err := h.catalog.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// GetProduct handles the single product page request.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// FeaturedProducts handles the featured products strip request.
func (h *CatalogHandler) FeaturedProducts(c echo.Context) error {
	products, err := h.catalog.FeaturedProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// Categories handles the category navigation request.
func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// HeroCarousel handles the landing page carousel request.
func (h *CatalogHandler) HeroCarousel(c echo.Context) error {
	products, err := h.hero.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}
