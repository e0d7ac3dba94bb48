package coingecko

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var defaultCoins = []string{"ethereum", "bitcoin", "usd-coin", "chainlink", "uniswap"}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SimplePrice returns CoinGecko's /simple/price body for the tracked coins in USD.
func (c *Client) SimplePrice(ctx context.Context) ([]byte, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(defaultCoins, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko prices: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("coingecko prices: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko prices: status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) || !gjson.GetBytes(body, "bitcoin.usd").Exists() {
		return nil, fmt.Errorf("coingecko prices: unexpected body")
	}
	return body, nil
}

type Quote struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// FallbackPrices is served when CoinGecko cannot be reached.
func FallbackPrices() map[string]Quote {
	return map[string]Quote{
		"ethereum": {USD: 2000.50, USD24hChange: 2.3},
		"bitcoin":  {USD: 65000.25, USD24hChange: -1.5},
		"usd-coin": {USD: 1.00, USD24hChange: 0.01},
	}
}
