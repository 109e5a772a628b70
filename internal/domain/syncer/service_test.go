package syncer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casabert/storefront-backend/internal/config"
	"github.com/casabert/storefront-backend/internal/pkg/appscript"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newSyncService(t *testing.T, primaryURL, refreshURL string) (*Service, string) {
	path := filepath.Join(t.TempDir(), "storefront.json")

	cfg := &config.Config{}
	cfg.Storefront.LocalSnapshotPath = path
	cfg.Storefront.RefreshURL = refreshURL
	cfg.Checkout.RequestTimeout = time.Second

	return NewService(cfg, appscript.NewClient(primaryURL, "test-token", time.Second), quietLogger()), path
}

func readSnapshot(t *testing.T, path string) map[string]interface{} {
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestSyncWritesRemoteDocument(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"meta": {"extraField": "kept"},
			"location": {"placeId": "remote-place"},
			"catalog": [
				{"name": "Bebidas", "items": [{"name": "Agua"}, {"name": "Café"}]},
				{"name": "Pan", "items": [{"name": "Concha"}]}
			]
		}`))
	}))
	defer remote.Close()

	svc, path := newSyncService(t, remote.URL, "")

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Categories)
	assert.Equal(t, 3, report.Items)
	assert.Equal(t, "remote-place", report.PlaceID)

	doc := readSnapshot(t, path)
	// Fields the server code never models must survive untouched.
	meta := doc["meta"].(map[string]interface{})
	assert.Equal(t, "kept", meta["extraField"])
}

func TestSyncKeepsLocalPlaceIDWhenRemoteOmitsIt(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"location": {"address": "Calle 1"}, "catalog": []}`))
	}))
	defer remote.Close()

	svc, path := newSyncService(t, remote.URL, "")
	require.NoError(t, os.WriteFile(path, []byte(`{"location": {"place_id": "local-place"}}`), 0o644))

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "local-place", report.PlaceID)

	doc := readSnapshot(t, path)
	loc := doc["location"].(map[string]interface{})
	assert.Equal(t, "local-place", loc["placeId"])
	assert.Equal(t, "Calle 1", loc["address"])
}

func TestSyncFallsBackToRefreshURL(t *testing.T) {
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"location": {"placeId": "fallback-place"}, "catalog": []}`))
	}))
	defer fallback.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	svc, _ := newSyncService(t, broken.URL, fallback.URL)

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fallback.URL, report.SourceURL)
	assert.Equal(t, "fallback-place", report.PlaceID)
}

func TestSyncReportsNoReachableSource(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer broken.Close()

	svc, path := newSyncService(t, broken.URL, "")
	require.NoError(t, os.WriteFile(path, []byte(`{"location": {"placeId": "local"}}`), 0o644))

	_, err := svc.Sync(context.Background())
	require.ErrorIs(t, err, ErrNoReachableSource)

	// The snapshot on disk must be left as it was.
	doc := readSnapshot(t, path)
	loc := doc["location"].(map[string]interface{})
	assert.Equal(t, "local", loc["placeId"])
}
