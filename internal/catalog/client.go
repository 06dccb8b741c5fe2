// Package catalog fetches the static BlockEdge carbon-credit project asset.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// StatusError reports a non-2xx response from the asset host. A failed
// catalog fetch is fatal to the refresh cycle that issued it, so the status
// survives up to the HTTP boundary.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog fetch failed: status %d: %s", e.Code, e.Message)
}

// Client fetches and decodes the project catalog
type Client struct {
	httpClient *http.Client
	assetURL   string
	logger     *zap.Logger
}

// NewClient creates a catalog client for the given asset URL
func NewClient(assetURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		assetURL:   assetURL,
		logger:     logger,
	}
}

// FetchCatalog retrieves the full project catalog. Transport failures,
// non-2xx statuses, and undecodable bodies are all errors: there is no
// partial catalog.
func (c *Client) FetchCatalog(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.assetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Message: string(body)}
	}

	var catalog Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if catalog.CarbonCreditProjects == nil {
		return nil, fmt.Errorf("catalog missing carbonCreditProjects")
	}

	c.logger.Debug("Fetched project catalog",
		zap.Int("standards", len(catalog.CarbonCreditProjects)),
		zap.Int("projects", catalog.ProjectCount()))

	return &catalog, nil
}

// FetchRaw retrieves the catalog body without decoding it. The proxy route
// uses this to forward the asset as-is.
func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.assetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Message: string(body)}
	}

	return io.ReadAll(resp.Body)
}
