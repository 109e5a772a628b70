// internal/domain/order/formatter.go
package order

import (
	"fmt"
	"strings"

	"github.com/casabert/storefront-backend/internal/domain/cart"
	"github.com/casabert/storefront-backend/internal/domain/customer"
)

// DefaultMessage is used when a submission carries no rendered message
const DefaultMessage = "🛒 Nuevo pedido internet (sin detalle)"

// FormatMessage renders the fixed-layout notification block used both for
// the operational channel and, verbatim, inside the ledger payload.
func FormatMessage(summary cart.Summary, cust customer.Record, promo cart.Promotion) string {
	lineRows := make([]string, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		lineRows = append(lineRows, fmt.Sprintf("• %s x%d", line.Name, line.Qty))
	}
	linesText := strings.Join(lineRows, "\n")
	if linesText == "" {
		linesText = "(sin líneas)"
	}

	customerBlock := strings.Join([]string{
		"Cliente: " + orND(cust.Name),
		"Teléfono: " + orND(cust.Phone),
		"Correo: " + orND(cust.Email),
		"Recoge: " + orND(cust.PickupDate),
		"Horario: " + orND(cust.PickupSlot),
		"Telegram ID: " + orND(cust.TelegramUserID),
	}, "\n")

	return strings.Join([]string{
		"🛒 NUEVO PEDIDO INTERNET · CASABERT",
		"",
		customerBlock,
		"",
		linesText,
		"",
		fmt.Sprintf("Productos: %d", summary.Qty),
		fmt.Sprintf("Total: $%d MXN", summary.Total),
		fmt.Sprintf("Etiquetas ganadas: %d", promo.LabelsEarned),
		fmt.Sprintf("Regalos por volumen: %d", promo.VolumeGiftQty),
	}, "\n")
}

// ConfirmationText renders the personal confirmation sent to a customer's
// own Telegram chat
func ConfirmationText(cust customer.Record, totalAmount int) string {
	greeting := strings.TrimSpace("Gracias " + cust.Name)

	return strings.Join([]string{
		"✅ ¡Pedido recibido en CASA BERT!",
		greeting,
		fmt.Sprintf("Recoge: %s · %s", orND(cust.PickupDate), orND(cust.PickupSlot)),
		fmt.Sprintf("Total estimado: $%d MXN", totalAmount),
		"",
		"Te esperamos en tienda 💚",
	}, "\n")
}

// BuildSheetRecord flattens a submission into the ledger row
func BuildSheetRecord(sub *Submission) SheetRecord {
	lineParts := make([]string, 0, len(sub.Lines))
	for _, line := range sub.Lines {
		lineParts = append(lineParts, fmt.Sprintf("%s x%d", line.Name, line.Qty))
	}

	return SheetRecord{
		CustomerName:  sub.Customer.Name,
		CustomerPhone: sub.Customer.Phone,
		CustomerEmail: strings.TrimSpace(sub.Customer.Email),
		PickupDate:    sub.Customer.PickupDate,
		PickupSlot:    sub.Customer.PickupSlot,
		TotalQty:      sub.TotalQty,
		TotalAmount:   sub.TotalAmount,
		LinesText:     strings.Join(lineParts, " | "),
	}
}

// BuildEmailIntent derives the email block the ledger backend acts on
func BuildEmailIntent(sub *Submission, defaultCc []string) EmailIntent {
	cc := sub.EmailCc
	if len(cc) == 0 {
		cc = defaultCc
	}

	name := sub.Customer.Name
	if name == "" {
		name = "Cliente"
	}

	return EmailIntent{
		To:      strings.TrimSpace(sub.Customer.Email),
		Cc:      cc,
		Subject: "Pedido CASA BERT · " + name,
	}
}

func orND(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/D"
	}
	return value
}
