// internal/interfaces/http/handlers/storefront.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/casabert/storefront-backend/internal/config"
	"github.com/casabert/storefront-backend/internal/domain/customer"
	"github.com/casabert/storefront-backend/internal/domain/imageindex"
	"github.com/casabert/storefront-backend/internal/domain/storefront"
	"github.com/casabert/storefront-backend/internal/pkg/appscript"
)

// StorefrontHandler handles storefront endpoints
type StorefrontHandler struct {
	storefrontService *storefront.Service
	config            *config.Config
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(cfg *config.Config, log *logrus.Logger) *StorefrontHandler {
	appsScript := appscript.NewClient(cfg.AppsScript.BaseURL, cfg.AppsScript.Token, cfg.Checkout.RequestTimeout)
	images := imageindex.NewResolver(cfg.Storefront.ImageIndexURL, cfg.Checkout.RequestTimeout)

	return &StorefrontHandler{
		storefrontService: storefront.NewService(cfg, appsScript, images, log),
		config:            cfg,
	}
}

// GetStorefront handles GET /storefront. The merged document is the response
// body itself; the UI consumes it directly.
func (h *StorefrontHandler) GetStorefront(c *gin.Context) {
	doc := h.storefrontService.Load(c.Request.Context())
	c.JSON(http.StatusOK, doc)
}

// GetCheckoutOptions handles GET /storefront/checkout-options
func (h *StorefrontHandler) GetCheckoutOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout options retrieved successfully",
		"data": gin.H{
			"countries":        customer.CountryOptions,
			"pickup_slots":     customer.PickupSlots,
			"earliest_pickup":  customer.EarliestPickupDate(timeNow()),
			"fixed_unit_price": h.config.Storefront.FixedUnitPrice,
			"currency":         h.config.Storefront.Currency,
		},
	})
}
