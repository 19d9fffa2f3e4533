// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"
	"bazaar/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds all handlers and middleware, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ShopHandler    *handler.ShopHandler
	WebShopHandler *handler.WebShopHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	shopHandler    *handler.ShopHandler
	webShopHandler *handler.WebShopHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		shopHandler:    params.ShopHandler,
		webShopHandler: params.WebShopHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes. The admin registration stays unauthenticated: it is
	// the bootstrap path that creates the first administrator.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/register/admin", r.userHandler.RegisterAdmin)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/shop/login", r.shopHandler.Login)
	}

	// User management is an admin concern except self-service updates.
	userGroup := e.Group("/users")
	{
		// Static route must be registered alongside /:id; echo resolves
		// static segments before params so /targets never shadows ids.
		userGroup.GET("/targets", r.userHandler.ListTargets, auth.AuthenticateShop)

		userGroup.GET("", r.userHandler.List, auth.AuthenticateUser, auth.RequireRole(entity.RoleAdmin))
		userGroup.GET("/:id", r.userHandler.Get, auth.AuthenticateUser, auth.RequireRole(entity.RoleAdmin))
		userGroup.PUT("/:id", r.userHandler.Replace, auth.AuthenticateUser)
		userGroup.PATCH("/:id", r.userHandler.Patch, auth.AuthenticateUser)
		userGroup.DELETE("/:id", r.userHandler.Delete, auth.AuthenticateUser)
	}

	// Public storefront discovery.
	searchGroup := e.Group("/shops/search")
	{
		searchGroup.GET("", r.shopHandler.List)
		searchGroup.GET("/id/:id", r.shopHandler.Get)
		searchGroup.GET("/name/:name", r.shopHandler.GetByName)
		searchGroup.GET("/city/:city", r.shopHandler.SearchByCity)
		searchGroup.GET("/activity/:activity", r.shopHandler.SearchByActivity)
		searchGroup.GET("/city/:city/activity/:activity", r.shopHandler.SearchByCityAndActivity)
		searchGroup.GET("/score", r.shopHandler.SearchByScore)
	}

	// Shops maintain their own account data.
	shopGroup := e.Group("/shops")
	shopGroup.Use(auth.AuthenticateShop)
	{
		shopGroup.PUT("/:id", r.shopHandler.Replace)
		shopGroup.PATCH("/:id", r.shopHandler.Patch)
		shopGroup.DELETE("/:id", r.shopHandler.Delete)
	}

	// Administrators register and manage shops.
	adminShopGroup := e.Group("/admin/shops")
	adminShopGroup.Use(auth.AuthenticateUser)
	adminShopGroup.Use(auth.RequireRole(entity.RoleAdmin))
	{
		adminShopGroup.GET("", r.shopHandler.List)
		adminShopGroup.GET("/:id", r.shopHandler.Get)
		adminShopGroup.POST("", r.shopHandler.Register)
		adminShopGroup.PUT("/:id", r.shopHandler.Replace)
		adminShopGroup.PATCH("/:id", r.shopHandler.Patch)
		adminShopGroup.DELETE("/:id", r.shopHandler.Delete)
	}

	// Storefront management by the owning shop's session.
	webShopGroup := e.Group("/webshops")
	{
		webShopGroup.POST("/:id", r.webShopHandler.Create, auth.AuthenticateShop)
		webShopGroup.GET("/:id", r.webShopHandler.Get, auth.AuthenticateShop)
		webShopGroup.PUT("/:id", r.webShopHandler.Replace, auth.AuthenticateShop)
		webShopGroup.PATCH("/:id", r.webShopHandler.Patch, auth.AuthenticateShop)
		webShopGroup.DELETE("/:id", r.webShopHandler.Delete, auth.AuthenticateShop)
		webShopGroup.PATCH("/:id/photos", r.webShopHandler.AppendPhoto, auth.AuthenticateShop)
		webShopGroup.PATCH("/:id/texts", r.webShopHandler.AppendText, auth.AuthenticateShop)
		webShopGroup.GET("/:id/photos", r.webShopHandler.ListPhotos, auth.AuthenticateShop)
		webShopGroup.GET("/:id/texts", r.webShopHandler.ListTexts, auth.AuthenticateShop)
		webShopGroup.GET("/:id/reviews", r.webShopHandler.ListReviews, auth.AuthenticateShop)

		// Reviews are posted by end-users, not shops.
		webShopGroup.POST("/:id/reviews", r.webShopHandler.AddReview,
			auth.AuthenticateUser, auth.RequireRole(entity.RoleUser))
	}
}
