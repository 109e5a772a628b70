// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/casabert/storefront-backend/internal/config"
	"github.com/casabert/storefront-backend/internal/domain/cart"
	"github.com/casabert/storefront-backend/internal/interfaces/http/handlers"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, store cart.Store, cfg *config.Config, log *logrus.Logger) {
	SetupStorefrontRoutes(rg, cfg, log)
	SetupCartRoutes(rg, store, cfg)
	SetupCheckoutRoutes(rg, store, cfg, log)
}

// SetupStorefrontRoutes sets up storefront related routes
func SetupStorefrontRoutes(rg *gin.RouterGroup, cfg *config.Config, log *logrus.Logger) {
	storefrontHandler := handlers.NewStorefrontHandler(cfg, log)

	storefront := rg.Group("/storefront")
	{
		storefront.GET("", storefrontHandler.GetStorefront)
		storefront.GET("/checkout-options", storefrontHandler.GetCheckoutOptions)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, store cart.Store, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(store, cfg)

	carts := rg.Group("/cart")
	{
		carts.GET("", cartHandler.GetCart)
		carts.DELETE("", cartHandler.ClearCart)
		carts.POST("/items", cartHandler.AddToCart)
		carts.PUT("/items/:key", cartHandler.UpdateCartItem)
		carts.DELETE("/items/:key", cartHandler.RemoveFromCart)
	}
}

// SetupCheckoutRoutes sets up checkout related routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, store cart.Store, cfg *config.Config, log *logrus.Logger) {
	checkoutHandler := handlers.NewCheckoutHandler(store, cfg, log)

	rg.POST("/checkout", checkoutHandler.Checkout)
}
