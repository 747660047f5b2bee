package scoreboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError int

func (s StatusError) Error() string {
	return "unexpected status: " + http.StatusText(int(s))
}

// Client talks to a scoreboard server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient creates a client for the server at baseURL. apiKey is exchanged
// for an upload token on the first Upload.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 4 * time.Second},
	}
}

// Fetch returns up to limit entries of the remote leaderboard.
func (c *Client) Fetch(ctx context.Context, limit int) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/scores?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch scores: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch scores: %w", StatusError(resp.StatusCode))
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return entries, nil
}

// Upload submits entry and returns the leaderboard after the insert.
func (c *Client) Upload(ctx context.Context, entry Entry) ([]Entry, error) {
	token, err := c.authorize(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scores", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload score: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upload score: %w", StatusError(resp.StatusCode))
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return entries, nil
}

// authorize returns a cached token, requesting a new one when it is missing
// or about to expire.
func (c *Client) authorize(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Until(c.expiresAt) > time.Minute {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set(APIKeyHeader, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("request token: %w", StatusError(resp.StatusCode))
	}

	var tr TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	c.token, c.expiresAt = tr.Token, tr.ExpiresAt
	return c.token, nil
}
