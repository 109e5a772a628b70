// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casabert/storefront-backend/internal/config"
)

// Store is the session-cart persistence. The redis infrastructure client
// satisfies it; a missing key must surface as redis.Nil.
type Store interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service handles cart business logic. Cart state lives in Redis keyed by
// session, expiring with the configured TTL; the cart is exclusively owned
// by its session, so no cross-session coordination is needed.
type Service struct {
	store  Store
	config *config.Config
}

// NewService creates a new cart service
func NewService(store Store, cfg *config.Config) *Service {
	return &Service{
		store:  store,
		config: cfg,
	}
}

// CartResponse represents a cart with its derived summary and promotion
type CartResponse struct {
	SessionID string    `json:"session_id"`
	Summary   Summary   `json:"summary"`
	Promotion Promotion `json:"promotion"`
	Notice    string    `json:"notice,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	Category string `json:"category" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// ChangeQtyRequest represents a quantity adjustment request
type ChangeQtyRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// GetCart retrieves the cart for a session
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.respond(sessionCart, ""), nil
}

// AddItem increments the matching line by one, creating it if absent. It
// always succeeds for a reachable store and reports a transient notice for
// the UI.
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line := sessionCart.Add(req.Category, req.Name)
	sessionCart.UpdatedAt = time.Now().UTC()

	if err := s.saveCart(ctx, sessionID, sessionCart); err != nil {
		return nil, err
	}

	notice := fmt.Sprintf("✅ %s agregado al carrito", line.Name)
	return s.respond(sessionCart, notice), nil
}

// ChangeQty adjusts a line's quantity by delta. Dropping to zero or below
// removes the line; an unknown key leaves the cart unchanged.
func (s *Service) ChangeQty(ctx context.Context, sessionID, key string, delta int) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sessionCart.ChangeQty(key, delta)
	sessionCart.UpdatedAt = time.Now().UTC()

	if err := s.saveCart(ctx, sessionID, sessionCart); err != nil {
		return nil, err
	}

	return s.respond(sessionCart, ""), nil
}

// Clear removes the whole cart for a session
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, cartKey(sessionID))
}

// Summary returns the derived summary for a session's cart
func (s *Service) Summary(ctx context.Context, sessionID string) (Summary, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(sessionCart.Lines, s.config.Storefront.FixedUnitPrice), nil
}

func (s *Service) respond(sessionCart *SessionCart, notice string) *CartResponse {
	summary := Summarize(sessionCart.Lines, s.config.Storefront.FixedUnitPrice)
	return &CartResponse{
		SessionID: sessionCart.SessionID,
		Summary:   summary,
		Promotion: ComputePromotion(summary.Qty),
		Notice:    notice,
		CreatedAt: sessionCart.CreatedAt,
		UpdatedAt: sessionCart.UpdatedAt,
	}
}

func (s *Service) loadCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for cart")
	}

	var sessionCart SessionCart
	err := s.store.GetJSON(ctx, cartKey(sessionID), &sessionCart)
	if errors.Is(err, redis.Nil) {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Lines:     make(map[string]Line),
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if sessionCart.Lines == nil {
		sessionCart.Lines = make(map[string]Line)
	}
	if sessionCart.SessionID == "" {
		sessionCart.SessionID = sessionID
	}

	return &sessionCart, nil
}

func (s *Service) saveCart(ctx context.Context, sessionID string, sessionCart *SessionCart) error {
	ttl := s.config.Storefront.CartTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return s.store.SetJSON(ctx, cartKey(sessionID), sessionCart, ttl)
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
