// Package supabase implements the storage interfaces against a hosted
// Supabase (PostgREST) project. It is the single seam where PostgREST
// status codes and transport failures are translated into the result
// taxonomy.
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

// Config holds Supabase connection configuration.
type Config struct {
	// ProjectURL is the Supabase project URL (e.g. https://xxx.supabase.co).
	ProjectURL string
	// ServiceKey is the service-role API key. Row-level security is handled
	// upstream; this layer only ever acts with an already resolved caller
	// identity in the criteria.
	ServiceKey string
	// Timeout for HTTP requests; defaults to 30s.
	Timeout time.Duration
}

// Client is a thin PostgREST REST client.
type Client struct {
	restURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a PostgREST client for the project.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ProjectURL == "" {
		return nil, fmt.Errorf("project URL is required")
	}
	if cfg.ServiceKey == "" {
		return nil, fmt.Errorf("service key is required")
	}
	base := strings.TrimRight(cfg.ProjectURL, "/")
	if _, err := neturl.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid project URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		restURL:    base + "/rest/v1",
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// do performs one REST call against a table. query is an already encoded
// query string without the leading "?". The caller owns interpreting the
// status code; transport failures come back already classified.
func (c *Client) do(ctx context.Context, method, table, query string, body []byte, headers map[string]string) ([]byte, int, http.Header, error) {
	urlStr := c.restURL + "/" + neturl.PathEscape(table)
	if query != "" {
		urlStr += "?" + query
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, nil, classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, nil, classifyTransport(ctx, err)
	}
	return respBody, resp.StatusCode, resp.Header, nil
}
