// Package api wraps outbound HTTP calls to the Timelex backend. Every
// request carries the session token when one is present; responses outside
// the 2xx range become StatusError values so callers can branch on the code
// without touching net/http.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/timelex/timelex-cli/internal/constants"
	"github.com/timelex/timelex-cli/internal/logger"
)

// ErrUnauthorized is returned for any 401 response. A 401 during a data
// refresh forces session teardown upstream.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is a non-2xx backend response. Message carries the backend's
// {"error": "..."} body field when one was sent.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}

// TokenSource supplies the current session token, or "" when logged out.
type TokenSource func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// New builds a client against http://<host>:<port>/api. The token source
// may be nil for a client that only performs login.
func New(host string, port int, token TokenSource) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d%s", host, port, constants.APIPrefix),
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
	}
}

// BaseURL returns the resolved backend base URL, useful for diagnostics.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
// out may be nil for endpoints returning no useful body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Patch issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE. The response body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Token "+tok)
		}
	}

	reqID := uuid.New().String()
	logger.Debug("API request", "id", reqID, "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("API request failed", "id", reqID, "error", err)
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("API request unauthorized", "id", reqID, "path", path)
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(reqID, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) statusError(reqID string, resp *http.Response) error {
	serr := &StatusError{Code: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			serr.Message = body.Error
		}
	}
	logger.Error("API request rejected", "id", reqID, "status", resp.StatusCode, "message", serr.Message)
	return serr
}
