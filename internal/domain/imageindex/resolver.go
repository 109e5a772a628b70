// internal/domain/imageindex/resolver.go
package imageindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrUpstreamUnavailable indicates the directory listing could not be
// fetched or did not look like a listing at all.
var ErrUpstreamUnavailable = errors.New("image index upstream unavailable")

// Index maps a normalized product name to a direct image URL
type Index map[string]string

// fileEntry is one descriptor from a contents-style directory listing
type fileEntry struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Resolver builds the product-name → image-URL lookup from a remote
// directory listing
type Resolver struct {
	listingURL string
	client     *http.Client
}

// NewResolver creates a new image index resolver
func NewResolver(listingURL string, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{
		listingURL: listingURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// Resolve fetches the directory listing and indexes image files by their
// normalized base filename. Entries without a download URL or with a
// non-image extension are skipped. When two files normalize to the same key
// the later one wins, matching listing order.
func (r *Resolver) Resolve(ctx context.Context) (Index, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: listing returned status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	var files []fileEntry
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, fmt.Errorf("%w: listing is not an array", ErrUpstreamUnavailable)
	}

	index := make(Index)
	for _, file := range files {
		ext := strings.ToLower(path.Ext(file.Name))
		if !imageExtensions[ext] || file.DownloadURL == "" {
			continue
		}
		base := strings.TrimSuffix(file.Name, path.Ext(file.Name))
		index[NormalizeKey(base)] = file.DownloadURL
	}

	return index, nil
}

// NormalizeKey reduces a product or file name to its matching key:
// Unicode-decomposed, diacritics stripped, lowercased, non-alphanumerics
// removed. The same normalization must be applied on both sides of the join
// for matching to succeed.
func NormalizeKey(value string) string {
	decomposed := norm.NFD.String(value)

	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
