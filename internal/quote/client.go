package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gemstrategy/backend/internal/market"
	"github.com/gemstrategy/backend/pkg/httputil"
	"github.com/gemstrategy/backend/pkg/logger"
)

// Client fetches daily price history from the Stooq CSV endpoint.
// SSOT: all quote provider calls go through this client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Stooq client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// FetchSeries downloads the daily price history for one symbol over the
// given date range. Transport errors and retryable statuses are retried
// by the underlying HTTP client; what reaches the caller is either a
// valid series, a *FetchError or a *FormatError.
func (c *Client) FetchSeries(ctx context.Context, symbol market.Symbol, from, to time.Time) (market.PriceSeries, error) {
	fullURL := fmt.Sprintf(
		"%s/q/d/l/?s=%s&d1=%s&d2=%s&i=d",
		c.baseURL,
		url.QueryEscape(string(symbol)),
		from.Format("20060102"),
		to.Format("20060102"),
	)

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	}).Debug("Fetching price series")

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Symbol: symbol,
			Err:    fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	series, dropped, err := parseCSV(symbol, resp.Body)
	if err != nil {
		return nil, err
	}

	if dropped > 0 {
		c.logger.WithFields(map[string]interface{}{
			"symbol":  symbol,
			"dropped": dropped,
		}).Warn("Dropped unparseable price rows")
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(series),
	}).Debug("Fetched price series")

	return series, nil
}
