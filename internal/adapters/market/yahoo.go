// Package market provides the live quote adapter for the PRICE tool path.
// Clean Architecture: Adapter implementing ports.MarketData.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

// YahooClient implements ports.MarketData against the Yahoo Finance chart
// endpoint, which serves quote metadata without authentication.
type YahooClient struct {
	baseURL string
	client  *http.Client
}

// NewYahooClient creates a quote client. baseURL is overridable for
// tests; empty means the public endpoint.
func NewYahooClient(baseURL string) *YahooClient {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &YahooClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quote fetches the latest market quote for a symbol.
func (c *YahooClient) Quote(ctx context.Context, symbol string) (*entities.Quote, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "finwise/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling quote service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote service returned status %d", resp.StatusCode)
	}

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if body.Chart.Error != nil {
		return nil, fmt.Errorf("quote service: %s", body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("no quote for symbol %s", symbol)
	}

	meta := body.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("no price for symbol %s", symbol)
	}

	return &entities.Quote{
		Symbol:        meta.Symbol,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.PreviousClose,
		Currency:      meta.Currency,
	}, nil
}
