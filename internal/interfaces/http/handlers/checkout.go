// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/casabert/storefront-backend/internal/config"
	"github.com/casabert/storefront-backend/internal/domain/cart"
	"github.com/casabert/storefront-backend/internal/domain/checkout"
	"github.com/casabert/storefront-backend/internal/domain/customer"
	"github.com/casabert/storefront-backend/internal/domain/order"
	"github.com/casabert/storefront-backend/internal/pkg/appscript"
	"github.com/casabert/storefront-backend/internal/pkg/telegram"
)

// CheckoutRequest is the order submission body. When the session cart holds
// lines they are the source of truth and the body's lines are ignored; the
// body's lines only carry an order for clients that never touched the cart
// endpoints. Totals are always recomputed at the fixed unit price.
type CheckoutRequest struct {
	Customer    customer.Record `json:"customer"`
	Source      string          `json:"source"`
	EmailCc     []string        `json:"emailCc"`
	Lines       []cart.Line     `json:"lines"`
	TotalQty    int             `json:"totalQty"`
	TotalAmount int             `json:"totalAmount"`
	Message     string          `json:"message"`
}

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	cartService     *cart.Service
	checkoutService *checkout.Service
	config          *config.Config
	log             *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(store cart.Store, cfg *config.Config, log *logrus.Logger) *CheckoutHandler {
	tg := telegram.NewClient(cfg.Telegram.BaseURL, cfg.Telegram.BotToken, cfg.Checkout.RequestTimeout)
	sheets := appscript.NewClient(cfg.AppsScript.BaseURL, cfg.AppsScript.Token, cfg.Checkout.RequestTimeout)

	return &CheckoutHandler{
		cartService:     cart.NewService(store, cfg),
		checkoutService: checkout.NewService(cfg, tg, sheets, log),
		config:          cfg,
		log:             log,
	}
}

// Checkout handles POST /checkout. The pickup details are validated before
// any network call; the cart is cleared only after the whole fan-out
// succeeded, so a failed order leaves the cart intact for a retry.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if problems := req.Customer.Validate(timeNow()); len(problems) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"ok":      false,
			"error":   "Checkout validation failed",
			"details": problems,
		})
		return
	}

	summary, err := h.cartService.Summary(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load cart",
		})
		return
	}

	sub := h.buildSubmission(&req, summary)

	result, err := h.checkoutService.Submit(c.Request.Context(), sub)
	if err != nil {
		h.log.WithError(err).Error("Checkout submission failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"ok":                       false,
			"error":                    checkoutErrorLabel(err),
			"telegram":                 result.Notify,
			"telegramUserConfirmation": result.Confirm,
			"sheet":                    result.Ledger,
		})
		return
	}

	// The order is in the ledger; only now does the cart go away. A failed
	// clear is logged but never turns a recorded order into an error.
	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		h.log.WithError(err).Warn("Failed to clear cart after checkout")
	}

	email := order.BuildEmailIntent(sub, h.config.Checkout.CCEmails)
	c.JSON(http.StatusOK, gin.H{
		"message": "Order submitted successfully",
		"data": gin.H{
			"ok":                       true,
			"telegram":                 result.Notify,
			"telegramUserConfirmation": result.Confirm,
			"sheet":                    result.Ledger,
			"qty":                      sub.TotalQty,
			"total":                    sub.TotalAmount,
			"promo":                    sub.Promo,
			"emailRequestedTo":         email.To,
			"emailRequestedCc":         email.Cc,
			"message":                  order.ConfirmationText(sub.Customer, sub.TotalAmount),
		},
	})
}

// buildSubmission assembles the immutable order from the validated request
// and the server-side cart summary. An empty session cart falls back to the
// body's lines, re-totaled at the fixed unit price.
func (h *CheckoutHandler) buildSubmission(req *CheckoutRequest, summary cart.Summary) *order.Submission {
	source := req.Source
	if source == "" {
		source = "mini_app"
	}

	if summary.Qty == 0 && len(req.Lines) > 0 {
		summary = cart.Summary{Lines: req.Lines}
		for _, line := range req.Lines {
			summary.Qty += line.Qty
		}
		summary.Total = summary.Qty * h.config.Storefront.FixedUnitPrice
	}

	promo := cart.ComputePromotion(summary.Qty)
	sub := &order.Submission{
		Source:      source,
		TotalQty:    summary.Qty,
		TotalAmount: summary.Total,
		Currency:    h.config.Storefront.Currency,
		EmailCc:     req.EmailCc,
		Promo:       promo,
		Customer:    req.Customer,
		Lines:       summary.Lines,
	}

	sub.Message = req.Message
	if sub.Message == "" {
		sub.Message = order.FormatMessage(summary, req.Customer, promo)
	}

	return sub
}

func checkoutErrorLabel(err error) string {
	switch {
	case errors.Is(err, checkout.ErrNotificationFailed):
		return "Order notification failed"
	case errors.Is(err, checkout.ErrLedgerWriteFailed):
		return "Order ledger write failed"
	default:
		return "Checkout failed"
	}
}
