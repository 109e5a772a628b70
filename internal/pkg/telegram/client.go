// internal/pkg/telegram/client.go
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// SendMessageRequest mirrors the Bot API sendMessage payload
type SendMessageRequest struct {
	ChatID          string `json:"chat_id"`
	Text            string `json:"text"`
	MessageThreadID int    `json:"message_thread_id,omitempty"`
}

// SendMessageResult carries the Bot API response. OK reflects the explicit
// flag in the body, not just the transport status.
type SendMessageResult struct {
	OK   bool
	Raw  json.RawMessage
	Code int
}

// Client is a minimal Telegram Bot API client
type Client struct {
	baseURL  string
	botToken string
	client   *http.Client
}

// NewClient creates a new Telegram client. baseURL is normally
// https://api.telegram.org; tests point it at a local server.
func NewClient(baseURL, botToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  baseURL,
		botToken: botToken,
		client:   &http.Client{Timeout: timeout},
	}
}

// SendMessage posts a message to a chat, optionally into a forum thread.
// threadID is the decimal thread identifier; empty means no thread.
func (c *Client) SendMessage(ctx context.Context, chatID, text, threadID string) (*SendMessageResult, error) {
	reqData := SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}
	if threadID != "" {
		if id, err := strconv.Atoi(threadID); err == nil {
			reqData.MessageThreadID = id
		}
	}

	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sendMessage request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send sendMessage request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sendMessage response: %w", err)
	}

	result := &SendMessageResult{
		Raw:  normalizeRaw(body),
		Code: resp.StatusCode,
	}

	// Success needs both a 2xx and the explicit ok flag in the body.
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
		result.OK = ok && parsed.OK
	}

	return result, nil
}

// normalizeRaw wraps non-JSON bodies so the raw response can always be
// embedded into a JSON result.
func normalizeRaw(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	wrapped, _ := json.Marshal(map[string]string{"raw": string(body)})
	return json.RawMessage(wrapped)
}
