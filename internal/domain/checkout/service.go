// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/casabert/storefront-backend/internal/config"
	"github.com/casabert/storefront-backend/internal/domain/order"
	"github.com/casabert/storefront-backend/internal/pkg/appscript"
	"github.com/casabert/storefront-backend/internal/pkg/telegram"
)

var (
	// ErrNotificationFailed means the operational notification did not go
	// through. Nothing after it runs: the ledger must never record an order
	// the staff channel never saw.
	ErrNotificationFailed = errors.New("operational notification failed")

	// ErrLedgerWriteFailed means the ledger write failed after the
	// notifications already went out. There is no retry and no rollback, so
	// staff may hold an order the ledger never recorded.
	ErrLedgerWriteFailed = errors.New("ledger write failed")
)

// StageResult records the outcome of one fan-out stage
type StageResult struct {
	OK      bool            `json:"ok"`
	Skipped bool            `json:"skipped,omitempty"`
	Code    int             `json:"code,omitempty"`
	Body    json.RawMessage `json:"body,omitempty"`
}

// Result carries per-stage outcomes. On error it is still returned so the
// caller can report which stages completed before the failure.
type Result struct {
	Notify  StageResult `json:"telegram"`
	Confirm StageResult `json:"telegramUserConfirmation"`
	Ledger  StageResult `json:"sheet"`
}

// ledgerPayload is the enriched order the ledger backend receives: the
// submission itself plus the derived sheet row and email instruction.
type ledgerPayload struct {
	*order.Submission
	Email order.EmailIntent `json:"email"`
	Sheet order.SheetRecord `json:"sheetRecord"`
}

// Service orchestrates the checkout fan-out
type Service struct {
	config   *config.Config
	telegram *telegram.Client
	sheets   *appscript.Client
	log      *logrus.Logger
}

// NewService creates a new checkout service
func NewService(cfg *config.Config, tg *telegram.Client, sheets *appscript.Client, log *logrus.Logger) *Service {
	return &Service{
		config:   cfg,
		telegram: tg,
		sheets:   sheets,
		log:      log,
	}
}

// Submit runs the fan-out for one order, strictly in sequence: operational
// notification, then the optional customer confirmation, then the ledger
// write. A notification failure aborts before the ledger is touched; a
// confirmation failure is absorbed; a ledger failure is surfaced with the
// partial results. Submit never mutates the cart; clearing it on success is
// the caller's job.
func (s *Service) Submit(ctx context.Context, sub *order.Submission) (*Result, error) {
	if sub.Message == "" {
		sub.Message = order.DefaultMessage
	}

	result := &Result{}

	notify, err := s.telegram.SendMessage(ctx, s.config.Telegram.ChatID, sub.Message, s.config.Telegram.ThreadID)
	if err != nil {
		s.log.WithError(err).Error("Checkout notification unreachable")
		return result, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	result.Notify = StageResult{OK: notify.OK, Code: notify.Code, Body: notify.Raw}
	if !notify.OK {
		s.log.WithField("status", notify.Code).Error("Checkout notification rejected")
		return result, ErrNotificationFailed
	}

	result.Confirm = s.confirmCustomer(ctx, sub)

	payload := ledgerPayload{
		Submission: sub,
		Email:      order.BuildEmailIntent(sub, s.config.Checkout.CCEmails),
		Sheet:      order.BuildSheetRecord(sub),
	}

	body, status, err := s.sheets.SubmitCheckout(ctx, s.config.AppsScript.CheckoutAction, payload)
	if err != nil {
		s.log.WithError(err).Error("Checkout ledger unreachable")
		return result, fmt.Errorf("%w: %v", ErrLedgerWriteFailed, err)
	}
	result.Ledger = StageResult{OK: is2xx(status), Code: status, Body: body}
	if !result.Ledger.OK {
		s.log.WithField("status", status).Error("Checkout ledger write rejected")
		return result, ErrLedgerWriteFailed
	}

	s.log.WithFields(logrus.Fields{
		"qty":   sub.TotalQty,
		"total": sub.TotalAmount,
	}).Info("Checkout fan-out completed")

	return result, nil
}

// confirmCustomer sends the personal confirmation when the shopper arrived
// through Telegram. Failures here never block the order.
func (s *Service) confirmCustomer(ctx context.Context, sub *order.Submission) StageResult {
	if sub.Customer.TelegramUserID == "" {
		return StageResult{OK: false, Skipped: true}
	}

	text := order.ConfirmationText(sub.Customer, sub.TotalAmount)
	sent, err := s.telegram.SendMessage(ctx, sub.Customer.TelegramUserID, text, "")
	if err != nil {
		s.log.WithError(err).Warn("Customer confirmation failed")
		return StageResult{OK: false}
	}
	if !sent.OK {
		s.log.WithField("status", sent.Code).Warn("Customer confirmation rejected")
	}

	return StageResult{OK: sent.OK, Code: sent.Code, Body: sent.Raw}
}

// is2xx reports whether a status counts as a successful write
func is2xx(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
