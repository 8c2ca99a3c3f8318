// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	AdminHandler    *handler.AdminHandler
	UserHandler     *handler.UserHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	adminHandler    *handler.AdminHandler
	userHandler     *handler.UserHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
		adminHandler:    params.AdminHandler,
		userHandler:     params.UserHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public storefront routes
	{
		api.GET("/products", r.catalogHandler.ListProducts)
		api.GET("/products/featured", r.catalogHandler.FeaturedProducts)
		api.GET("/products/:id", r.catalogHandler.GetProduct)
		api.GET("/categories", r.catalogHandler.Categories)
		api.GET("/hero", r.catalogHandler.HeroCarousel)
	}

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.userHandler.SignUp)
		authGroup.POST("/signin", r.userHandler.SignIn)
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/signout", r.userHandler.SignOut)
		authGroup.POST("/password-reset/request", r.userHandler.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", r.userHandler.ConfirmPasswordReset)
	}

	// Cart and checkout routes require authentication
	cartGroup := api.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	checkoutGroup := api.Group("")
	checkoutGroup.Use(r.authMiddleware.Authenticate)
	{
		checkoutGroup.POST("/checkout", r.checkoutHandler.PlaceOrder)
		checkoutGroup.GET("/orders", r.checkoutHandler.ListOrders)
		checkoutGroup.GET("/orders/:id", r.checkoutHandler.GetOrder)
		checkoutGroup.GET("/orders/:id/qr", r.checkoutHandler.OrderQR)
	}

	// Admin routes require authentication and the "admin" role
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/dashboard", r.adminHandler.Dashboard)
		adminGroup.GET("/products", r.adminHandler.ListProducts)
		adminGroup.GET("/orders", r.adminHandler.ListOrders)
		adminGroup.POST("/products", r.adminHandler.AddProduct)
		adminGroup.PUT("/products/:id", r.adminHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.adminHandler.DeleteProduct)
		adminGroup.PUT("/orders/:id/status", r.adminHandler.UpdateOrderStatus)
		adminGroup.PUT("/orders/:id/payment", r.adminHandler.UpdatePaymentStatus)
		adminGroup.POST("/hero/:productId", r.adminHandler.AddHeroProduct)
		adminGroup.DELETE("/hero/:productId", r.adminHandler.RemoveHeroProduct)
	}
}
