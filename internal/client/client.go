// Package client ships session summaries to the pattern-learning backend.
// The backend's API is an external contract; this package only defines the
// request envelope acetrail sends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ce-dot-net/acetrail/internal/summary"
)

// LearnRequest is the payload posted to the backend's learn endpoint.
type LearnRequest struct {
	SessionID string          `json:"session_id"`
	Workspace string          `json:"workspace"`
	Summary   summary.Summary `json:"summary"`
}

// Client talks to the learning backend over HTTP.
type Client struct {
	BaseURL string
	// HTTPClient overrides the transport in tests. Nil means a client with
	// Timeout as its overall deadline.
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Learn posts a session summary. A non-2xx response is an error; the body is
// included (truncated) so failures are diagnosable from the CLI output.
func (c *Client) Learn(ctx context.Context, req LearnRequest) error {
	if c.BaseURL == "" {
		return fmt.Errorf("learn: no backend URL configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("learn: marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/learn", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("learn: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		timeout := c.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("learn: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("learn: backend returned %s: %s", resp.Status, bytes.TrimSpace(snippet))
	}
	return nil
}
