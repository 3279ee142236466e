// File: internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iyunix/go-spurchat/internal/domain"
)

const DefaultBaseURL = "http://localhost:3000"

// ErrNetwork is returned when the server could not be reached at all.
var ErrNetwork = errors.New("Network error. Please check your connection.")

// Message is one history entry as returned by the API.
type Message struct {
	ID        string        `json:"id"`
	Sender    domain.Sender `json:"sender"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
}

type Session struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// APIError carries the server's error text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the chat HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SendMessage(ctx context.Context, message, sessionID string) (*ChatResponse, error) {
	body := map[string]string{"message": message}
	if sessionID != "" {
		body["sessionId"] = sessionID
	}

	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat/message", body, &resp, "Failed to send message"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetHistory(ctx context.Context, sessionID string) ([]Message, error) {
	var resp struct {
		Messages []Message `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/chat/history/"+url.PathEscape(sessionID), nil, &resp, "Failed to fetch history"); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func (c *Client) GetSessions(ctx context.Context) ([]Session, error) {
	var resp struct {
		Sessions []Session `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, "/chat/sessions", nil, &resp, "Failed to fetch sessions"); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// DeleteAllSessions returns the server's confirmation text.
func (c *Client) DeleteAllSessions(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, "/chat/sessions", nil, &resp, "Failed to delete history"); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// do sends one request. Non-2xx responses become an APIError with the
// server's "error" text, or fallback when the body has none.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}, fallback string) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w (%v)", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
			return &APIError{Status: resp.StatusCode, Message: fallback}
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
