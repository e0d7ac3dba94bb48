// Package teller talks to the Teller bank-data API. Every call degrades to
// static sample data when the upstream is unreachable or refuses the request.
package teller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// Accounts returns the raw account list from Teller.
func (c *Client) Accounts(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/accounts", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("teller accounts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("teller accounts: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("teller accounts: status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("teller accounts: invalid json")
	}
	return body, nil
}

// AccountsWithBalance keeps only the accounts that report a balance.
func AccountsWithBalance(raw []byte) []byte {
	var kept []string
	gjson.ParseBytes(raw).ForEach(func(_, acc gjson.Result) bool {
		if acc.Get("balance").Exists() {
			kept = append(kept, acc.Raw)
		}
		return true
	})
	return []byte("[" + strings.Join(kept, ",") + "]")
}

type FallbackBalance struct {
	Available string `json:"available"`
}

type FallbackAccount struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance FallbackBalance `json:"balance"`
}

func FallbackAccounts() []FallbackAccount {
	return []FallbackAccount{
		{ID: "acc_1", Name: "Checking Account", Balance: FallbackBalance{Available: "5250.00"}},
		{ID: "acc_2", Name: "Savings Account", Balance: FallbackBalance{Available: "12480.00"}},
	}
}

// FallbackTotalBalance is the sum of FallbackAccounts.
const FallbackTotalBalance = 17730.00
