// package api implements the HTTP client for the spotify-app backend proxy.
//
// The client performs one call at a time and returns the raw response for any
// HTTP status; deciding what counts as a failure belongs to the state layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lacroixthomas/spotify-app/internal/shared"
	"golang.org/x/time/rate"
)

// Backend endpoints.
const (
	PathUser        = "/user"
	PathPlayer      = "/player"
	PathPlaylist    = "/playlist"
	PathPlayerPlay  = "/player/play"
	PathPlayerPause = "/player/pause"
	PathPlayerNext  = "/player/next"
	PathPlayerPrev  = "/player/prev"
)

// Client makes authenticated requests to the backend proxy. It holds no
// credential of its own; the caller passes one per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a backend client. baseURL defaults to
// "http://127.0.0.1:8080", the HTTP client to [http.DefaultClient], and the
// rate limit to 5 requests per second.
func NewClient(baseURL string, httpClient *http.Client, rps float64, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if rps <= 0 {
		rps = 5
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// Response is the raw result of a backend call. Any HTTP response whose body
// is JSON (or empty) produces a Response, including non-2xx statuses.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Call performs one HTTP request against the backend.
//
// The credential is attached as a bearer authorization header. A non-nil body
// is JSON-encoded and sent with a JSON content type. Transport failures and
// unparseable (non-JSON, non-empty) bodies return an error wrapping
// [shared.ErrNetwork]; everything else, including non-2xx statuses, returns a
// [Response] for the caller to classify. No retries happen at this layer.
func (c *Client) Call(ctx context.Context, method, path, credential string, body any) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+credential)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	// Command endpoints respond with empty bodies on success; only a
	// non-empty body that isn't JSON counts as unparseable.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: response body is not JSON", shared.ErrNetwork)
	}

	c.logger.Debug("backend call", "method", method, "path", path, "status", resp.StatusCode)

	return &Response{StatusCode: resp.StatusCode, Body: raw}, nil
}
