// Package api is the HTTP client for the email improvement service. It
// covers the processing endpoint plus the template and category
// collections. Every call is a single attempt; retry policy belongs to
// the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	processPath    = "/api/process-email"
	templatesPath  = "/api/templates"
	categoriesPath = "/api/categories"
)

// Client talks to the improvement service over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a client for the service at baseURL. A zero timeout keeps
// the transport's default behavior.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do issues one JSON request. A non-2xx status becomes a *RequestError
// carrying the server's detail field; a transport failure becomes a
// *TransportError. When out is non-nil the response body is decoded
// into it.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	logger := c.log.With().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Logger()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("request failed in transport")
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{Status: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
			reqErr.Detail = detail.Detail
		}
		logger.Warn().Int("status", resp.StatusCode).Str("detail", reqErr.Detail).Msg("request rejected")
		return reqErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			logger.Error().Err(err).Msg("malformed response body")
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	logger.Debug().Int("status", resp.StatusCode).Msg("request completed")
	return nil
}
