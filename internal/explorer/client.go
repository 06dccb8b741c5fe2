// Package explorer is the client for the CO2e chain explorer JSON API.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client calls the explorer API. Per-item lookups (token info, NFT
// instances) distinguish "no data yet" from "request failed": a 404 or an
// unusable payload returns (nil, nil) so the caller can degrade that one
// record, while transport errors propagate.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates an explorer client for the given API base URL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// TokenInfo fetches supply, decimals, and holder figures for a token
// contract. Returns (nil, nil) when the explorer has no usable data for the
// address.
func (c *Client) TokenInfo(ctx context.Context, address string) (*TokenInfo, error) {
	if address == "" {
		return nil, nil
	}

	var info TokenInfo
	found, err := c.getJSON(ctx, fmt.Sprintf("/tokens/%s", address), &info)
	if err != nil {
		return nil, err
	}
	if !found || info.TotalSupply == "" {
		c.logger.Debug("No on-chain data for token", zap.String("address", address))
		return nil, nil
	}
	return &info, nil
}

// TokenInstance fetches one certificate NFT's metadata. Returns (nil, nil)
// when the instance does not exist.
func (c *Client) TokenInstance(ctx context.Context, address, tokenID string) (*NFTInstance, error) {
	if address == "" {
		return nil, nil
	}

	var instance NFTInstance
	found, err := c.getJSON(ctx, fmt.Sprintf("/tokens/%s/instances/%s", address, tokenID), &instance)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &instance, nil
}

// TokenTransferCount returns the number of transfers recorded for a contract.
// It prefers the counters endpoint and falls back to counting the first page
// of the transfer listing.
func (c *Client) TokenTransferCount(ctx context.Context, address string) (int64, error) {
	var counters TokenCounters
	found, err := c.getJSON(ctx, fmt.Sprintf("/tokens/%s/counters", address), &counters)
	if err != nil {
		return 0, err
	}
	if found && counters.TransfersCount != "" {
		var n int64
		if _, err := fmt.Sscanf(counters.TransfersCount, "%d", &n); err == nil {
			return n, nil
		}
	}

	var page transfersPage
	found, err = c.getJSON(ctx, fmt.Sprintf("/tokens/%s/transfers", address), &page)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return int64(len(page.Items)), nil
}

// NetworkStats fetches chain-wide statistics.
func (c *Client) NetworkStats(ctx context.Context) (*NetworkStats, error) {
	var stats NetworkStats
	found, err := c.getJSON(ctx, "/stats", &stats)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("explorer stats unavailable")
	}
	return &stats, nil
}

// MainPageTransactions fetches the explorer's recent-transactions feed.
func (c *Client) MainPageTransactions(ctx context.Context) ([]MainPageTransaction, error) {
	var txs []MainPageTransaction
	found, err := c.getJSON(ctx, "/main-page/transactions", &txs)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return txs, nil
}

// MainPageBlocks fetches the explorer's recent-blocks feed.
func (c *Client) MainPageBlocks(ctx context.Context) ([]MainPageBlock, error) {
	var blocks []MainPageBlock
	found, err := c.getJSON(ctx, "/main-page/blocks", &blocks)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return blocks, nil
}

// getJSON performs a GET and decodes the body into out. Returns found=false
// on 404 and on bodies that fail to decode; errors only on transport failures
// and unexpected statuses.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) (bool, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("explorer request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return false, fmt.Errorf("explorer request %s failed: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Debug("Undecodable explorer payload", zap.String("path", path), zap.Error(err))
		return false, nil
	}
	return true, nil
}
