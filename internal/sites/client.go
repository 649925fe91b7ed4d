// Package sites resolves site references and access grants against the
// platform sites API.
package sites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrNotFound = errors.New("site not found")

// Site is the resolved site reference every downstream operation is
// scoped to.
type Site struct {
	ID             string `json:"id"`
	BaseURL        string `json:"base_url"`
	OrganizationID string `json:"organization_id"`
}

// Resolver looks a site up by ID.
type Resolver interface {
	Resolve(ctx context.Context, siteID string) (*Site, error)
}

// AccessChecker reports whether the current principal may read the
// site's analytics. Consulted once per request after resolution.
type AccessChecker interface {
	HasAccess(ctx context.Context, site *Site) (bool, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpc   HTTPClient
	baseURL string
	apiKey  string
}

var (
	_ Resolver      = (*Client)(nil)
	_ AccessChecker = (*Client)(nil)
)

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{httpc: &http.Client{Timeout: timeout}, baseURL: baseURL, apiKey: apiKey}
}

func (c *Client) Resolve(ctx context.Context, siteID string) (*Site, error) {
	var site Site
	if err := c.getJSON(ctx, "/sites/"+siteID, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

func (c *Client) HasAccess(ctx context.Context, site *Site) (bool, error) {
	var out struct {
		Allowed bool `json:"allowed"`
	}
	if err := c.getJSON(ctx, "/sites/"+site.ID+"/access", &out); err != nil {
		return false, err
	}
	return out.Allowed, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("sites: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sites: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sites: non-2xx: %d body=%s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
