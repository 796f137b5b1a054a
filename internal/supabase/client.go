// Package supabase implements the remote gateway: a client for the hosted
// backend's REST data API, its auth endpoints, its edge functions, and its
// realtime change feed. The backend owns all durable state and business
// rules; this package only shapes requests and decodes responses.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20 // 4 MiB

// Client is the remote gateway. Safe for concurrent use.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a Client for the backend named by cfg. The config must have
// passed Validate.
func New(cfg types.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.SupabaseURL, "/"),
		anonKey: cfg.SupabaseAnonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// request makes one HTTP call against the backend. path is relative to the
// base URL (e.g. "/rest/v1/menu_items"). token is the user's access token;
// when empty the anon key is presented instead, which limits the call to
// whatever row-level security grants anonymous clients.
func (c *Client) request(ctx context.Context, method, path, query, token string, body any, headers map[string]string) ([]byte, error) {
	url := c.baseURL + path
	if query != "" {
		url += "?" + query
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if token == "" {
		token = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("gateway request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRemote, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", types.ErrRemote, err)
	}

	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(respBody))
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("gateway error")
		return nil, fmt.Errorf("%w: status %d: %s", types.ErrRemote, resp.StatusCode, msg)
	}

	return respBody, nil
}
