// internal/domain/order/entity.go
package order

import (
	"github.com/casabert/storefront-backend/internal/domain/cart"
	"github.com/casabert/storefront-backend/internal/domain/customer"
)

// Submission is the unit handed to the checkout fan-out. It is immutable
// once constructed; one submission corresponds to exactly one cart-clear on
// success.
type Submission struct {
	Source      string          `json:"source"`
	TotalQty    int             `json:"totalQty"`
	TotalAmount int             `json:"totalAmount"`
	Currency    string          `json:"currency"`
	EmailCc     []string        `json:"emailCc,omitempty"`
	Promo       cart.Promotion  `json:"promo"`
	Customer    customer.Record `json:"customer"`
	Lines       []cart.Line     `json:"lines"`
	Message     string          `json:"message"`
}

// SheetRecord flattens a submission into the ledger's expected field names
type SheetRecord struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`
	PickupDate    string `json:"pickupDate"`
	PickupSlot    string `json:"pickupSlot"`
	TotalQty      int    `json:"totalQty"`
	TotalAmount   int    `json:"totalAmount"`
	LinesText     string `json:"linesText"`
}

// EmailIntent describes the confirmation email the ledger backend sends on
// our behalf
type EmailIntent struct {
	To      string   `json:"to"`
	Cc      []string `json:"cc"`
	Subject string   `json:"subject"`
}
