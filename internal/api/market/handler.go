package market

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"investment-app/internal/infra/cache"
	"investment-app/internal/infra/coingecko"
	"investment-app/internal/infra/metrics"
	"investment-app/internal/infra/teller"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pricesCacheKey = "prices:simple"

type PriceSource interface {
	SimplePrice(ctx context.Context) ([]byte, error)
}

type AccountSource interface {
	Accounts(ctx context.Context) ([]byte, error)
}

type Handler struct {
	Prices   PriceSource
	Accounts AccountSource
	Cache    cache.Cache
	PriceTTL time.Duration
	Log      *zap.Logger
}

func NewHandler(prices PriceSource, accounts AccountSource, c cache.Cache, priceTTL time.Duration, log *zap.Logger) *Handler {
	if c == nil {
		c = cache.NewMemory()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Prices: prices, Accounts: accounts, Cache: c, PriceTTL: priceTTL, Log: log}
}

// GetPrices proxies CoinGecko through the cache. Upstream failures fall back to a
// static table and are not cached.
func (h *Handler) GetPrices(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := h.Cache.Get(ctx, pricesCacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	body, err := h.Prices.SimplePrice(ctx)
	if err != nil {
		h.Log.Warn("price feed unavailable, serving fallback", zap.Error(err))
		metrics.UpstreamFallback("coingecko")
		c.JSON(http.StatusOK, coingecko.FallbackPrices())
		return
	}

	if err := h.Cache.Set(ctx, pricesCacheKey, string(body), h.PriceTTL); err != nil {
		h.Log.Warn("price cache write failed", zap.Error(err))
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

type TokenBalance struct {
	Token    string  `json:"token"`
	Balance  string  `json:"balance"`
	USDValue float64 `json:"usd_value"`
}

type WalletBalance struct {
	Address  string         `json:"address"`
	Balances []TokenBalance `json:"balances"`
	TotalUSD float64        `json:"total_usd"`
}

// WalletTotalUSD is the value of the sample wallet returned by StaticWalletBalance.
const WalletTotalUSD = 7218.50

// StaticWalletBalance is a fixed sample sheet; no chain indexer is wired yet.
func StaticWalletBalance(address string) WalletBalance {
	return WalletBalance{
		Address: address,
		Balances: []TokenBalance{
			{Token: "ETH", Balance: "1.234", USDValue: 2468.50},
			{Token: "USDC", Balance: "1500.00", USDValue: 1500.00},
			{Token: "WBTC", Balance: "0.05", USDValue: 3250.00},
		},
		TotalUSD: WalletTotalUSD,
	}
}

func (h *Handler) GetWalletBalance(c *gin.Context) {
	c.JSON(http.StatusOK, StaticWalletBalance(c.Param("address")))
}

func requireUserHeader(c *gin.Context) bool {
	if c.GetHeader("X-User-ID") == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return false
	}
	return true
}

// GetBankAccounts proxies the Teller account list.
func (h *Handler) GetBankAccounts(c *gin.Context) {
	if !requireUserHeader(c) {
		return
	}

	body, err := h.Accounts.Accounts(c.Request.Context())
	if err != nil {
		h.Log.Warn("bank accounts unavailable, serving fallback", zap.Error(err))
		metrics.UpstreamFallback("teller")
		c.JSON(http.StatusOK, gin.H{"accounts": teller.FallbackAccounts()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetBankBalance returns the accounts that carry a balance, or the fallback total.
func (h *Handler) GetBankBalance(c *gin.Context) {
	if !requireUserHeader(c) {
		return
	}

	body, err := h.Accounts.Accounts(c.Request.Context())
	if err != nil {
		h.Log.Warn("bank balance unavailable, serving fallback", zap.Error(err))
		metrics.UpstreamFallback("teller")
		c.JSON(http.StatusOK, gin.H{
			"total_balance": teller.FallbackTotalBalance,
			"accounts":      len(teller.FallbackAccounts()),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": json.RawMessage(teller.AccountsWithBalance(body))})
}
