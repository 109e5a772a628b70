package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casabert/storefront-backend/internal/config"
)

// memoryStore is an in-memory Store for tests, mirroring the redis client's
// JSON round trip and redis.Nil-on-miss behavior.
type memoryStore struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (m *memoryStore) GetJSON(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryStore) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.ttls[key] = expiration
	return nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
		delete(m.ttls, key)
	}
	return nil
}

func newServiceWithStore(store Store) *Service {
	cfg := &config.Config{}
	cfg.Storefront.FixedUnitPrice = 15
	cfg.Storefront.CartTTL = 24 * time.Hour
	return NewService(store, cfg)
}

func TestGetCartReturnsFreshCartOnMiss(t *testing.T) {
	svc := newServiceWithStore(newMemoryStore())

	resp, err := svc.GetCart(context.Background(), "session-1")
	require.NoError(t, err)

	assert.Equal(t, "session-1", resp.SessionID)
	assert.Empty(t, resp.Summary.Lines)
	assert.Equal(t, 0, resp.Summary.Total)
}

func TestAddItemPersistsAndSummarizes(t *testing.T) {
	store := newMemoryStore()
	svc := newServiceWithStore(store)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := svc.AddItem(ctx, "session-1", &AddItemRequest{Category: "Bebidas", Name: "Agua"})
		require.NoError(t, err)
	}

	resp, err := svc.GetCart(ctx, "session-1")
	require.NoError(t, err)

	require.Len(t, resp.Summary.Lines, 1)
	assert.Equal(t, 12, resp.Summary.Qty)
	assert.Equal(t, 180, resp.Summary.Total)
	assert.Equal(t, Promotion{LabelsEarned: 2, LabelsToNextGift: 8, VolumeGiftQty: 2}, resp.Promotion)

	// The cart lives under the session key with the configured TTL.
	assert.Contains(t, store.data, "cart:session:session-1")
	assert.Equal(t, 24*time.Hour, store.ttls["cart:session:session-1"])
}

func TestChangeQtyRoundTrip(t *testing.T) {
	svc := newServiceWithStore(newMemoryStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "session-1", &AddItemRequest{Category: "Pan", Name: "Concha"})
	require.NoError(t, err)

	resp, err := svc.ChangeQty(ctx, "session-1", "pan::concha", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Summary.Qty)

	resp, err = svc.ChangeQty(ctx, "session-1", "pan::concha", -3)
	require.NoError(t, err)
	assert.Empty(t, resp.Summary.Lines)
}

func TestClearRemovesStoredCart(t *testing.T) {
	store := newMemoryStore()
	svc := newServiceWithStore(store)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "session-1", &AddItemRequest{Category: "Bebidas", Name: "Agua"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "session-1"))
	assert.NotContains(t, store.data, "cart:session:session-1")
}

func TestCartsAreSessionScoped(t *testing.T) {
	svc := newServiceWithStore(newMemoryStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "session-a", &AddItemRequest{Category: "Bebidas", Name: "Agua"})
	require.NoError(t, err)

	resp, err := svc.GetCart(ctx, "session-b")
	require.NoError(t, err)
	assert.Empty(t, resp.Summary.Lines)
}
