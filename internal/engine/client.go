// Package engine talks to the analytical query engine over HTTP: one
// opaque query string in, flat rows out. No retries at this layer;
// transient failures are the engine's problem.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Row is one projected result row keyed by output column name.
type Row = map[string]any

// Engine executes an aggregate query and returns its rows in order.
type Engine interface {
	Query(ctx context.Context, query string) ([]Row, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpc HTTPClient
	url   string
}

var _ Engine = (*Client)(nil)

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{httpc: &http.Client{Timeout: timeout}, url: url}
}

func (c *Client) Query(ctx context.Context, query string) ([]Row, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("engine: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("engine: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("engine: non-2xx: %d body=%s", resp.StatusCode, string(b))
	}

	var out struct {
		Rows []Row `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("engine: decode rows: %w", err)
	}
	return out.Rows, nil
}
