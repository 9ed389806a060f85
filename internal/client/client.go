// Package client is the HTTP client for the game API, used by the
// terminal front-end.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emellop-senai/arena-senai-forca/internal/domain"
)

// Client calls the game API over HTTP/JSON
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL, e.g. http://localhost:6262
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is a non-2xx response decoded from the {error: string} body
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Login finds or creates the user
func (c *Client) Login(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/api/login", domain.LoginRequest{Username: username}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RandomWord fetches a puzzle for a new round
func (c *Client) RandomWord(ctx context.Context) (*domain.Word, error) {
	var word domain.Word
	err := c.do(ctx, http.MethodGet, "/api/palavras/aleatoria", nil, &word)
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// RecordMatch reports a finished round
func (c *Client) RecordMatch(ctx context.Context, m domain.MatchSubmission) error {
	return c.do(ctx, http.MethodPost, "/api/partidas", m, nil)
}

// Ranking fetches the top users, best first
func (c *Client) Ranking(ctx context.Context) ([]domain.RankingEntry, error) {
	var entries []domain.RankingEntry
	err := c.do(ctx, http.MethodGet, "/api/ranking", nil, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// do sends one request and decodes the response into out when non-nil
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
