package imageindex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Agua", "agua"},
		{"Café de Olla", "cafedeolla"},
		{"PAN dulce (grande)", "pandulcegrande"},
		{"Niño Envuelto", "ninoenvuelto"},
		{"tamal-verde_2", "tamalverde2"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "input %q", tt.in)
	}
}

func TestResolveIndexesImageFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "Café de Olla.jpg", "download_url": "https://cdn.example.com/cafe.jpg"},
			{"name": "Agua.png", "download_url": "https://cdn.example.com/agua.png"},
			{"name": "notes.txt", "download_url": "https://cdn.example.com/notes.txt"},
			{"name": "sin-url.webp"},
			{"name": "AGUA.webp", "download_url": "https://cdn.example.com/agua2.webp"}
		]`))
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, 0)
	index, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/cafe.jpg", index["cafedeolla"])
	// Collisions resolve last-wins in listing order.
	assert.Equal(t, "https://cdn.example.com/agua2.webp", index["agua"])
	// Non-image files and entries without a download URL are filtered out.
	assert.NotContains(t, index, "notes")
	assert.NotContains(t, index, "sinurl")
	assert.Len(t, index, 2)
}

func TestResolveRejectsNonArrayListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "rate limited"}`))
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, 0)
	_, err := resolver.Resolve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestResolveRejectsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, 0)
	_, err := resolver.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
