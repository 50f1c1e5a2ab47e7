// Package indexer talks to the external market-indexing service. The
// indexer observes on-chain market creation with a delay; the register
// and reconcile packages cover the gap for locally created markets.
package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

// Client is an HTTP client for the external market indexer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new indexer client.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchMarkets fetches the full indexed market list.
func (c *Client) FetchMarkets(ctx context.Context) ([]types.Market, error) {
	endpoint := fmt.Sprintf("%s/markets", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "private-markets/1.0")

	c.logger.Debug("fetching-indexed-markets", zap.String("url", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		FetchErrorsTotal.Inc()
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		FetchErrorsTotal.Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		FetchErrorsTotal.Inc()
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var markets []types.Market
	err = json.Unmarshal(body, &markets)
	if err != nil {
		FetchErrorsTotal.Inc()
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	MarketsFetchedTotal.Add(float64(len(markets)))

	c.logger.Debug("indexed-markets-fetched", zap.Int("count", len(markets)))

	return markets, nil
}
