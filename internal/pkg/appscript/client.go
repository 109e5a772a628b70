// internal/pkg/appscript/client.go
package appscript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the Apps Script web app that fronts the catalog spreadsheet
// and the order ledger. Every call selects an action via the api query
// parameter and authenticates with the shared token.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a new Apps Script client
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// ActionURL builds the endpoint URL for a given action
func (c *Client) ActionURL(action string) string {
	return fmt.Sprintf("%s?api=%s&token=%s", c.baseURL, url.QueryEscape(action), url.QueryEscape(c.token))
}

// FetchStorefront retrieves the remote storefront document as raw JSON.
// Non-OK statuses and non-JSON-object bodies are reported as errors so the
// caller can fall back to its local snapshot.
func (c *Client) FetchStorefront(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ActionURL("storefront"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storefront request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch storefront: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read storefront response: %w", err)
	}

	if !isJSONObject(body) {
		return nil, fmt.Errorf("storefront upstream returned non-JSON response")
	}

	return json.RawMessage(body), nil
}

// SubmitCheckout posts the enriched order payload to the ledger action.
// The response body is best-effort JSON: a non-JSON body is wrapped as
// {"raw": text} rather than dropped. The HTTP status is returned so the
// caller can distinguish a failed write that still produced a body.
func (c *Client) SubmitCheckout(ctx context.Context, action string, payload interface{}) (json.RawMessage, int, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal checkout payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ActionURL(action), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to submit checkout: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read checkout response: %w", err)
	}

	if json.Valid(body) {
		return json.RawMessage(body), resp.StatusCode, nil
	}

	wrapped, _ := json.Marshal(map[string]string{"raw": string(body)})
	return json.RawMessage(wrapped), resp.StatusCode, nil
}

// isJSONObject reports whether body parses as a JSON object
func isJSONObject(body []byte) bool {
	var probe map[string]json.RawMessage
	return json.Unmarshal(body, &probe) == nil
}
