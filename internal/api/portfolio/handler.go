package portfolio

import (
	"net/http"

	"investment-app/internal/api/market"
	"investment-app/internal/domain/investments"
	"investment-app/internal/domain/membership"
	"investment-app/internal/infra/teller"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Investments *investments.Service
	Log         *zap.Logger
}

func NewHandler(svc *investments.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Investments: svc, Log: log}
}

type Total struct {
	Total float64 `json:"total"`
}

type InvestmentsSummary struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type Breakdown struct {
	InvestmentsPercentage float64 `json:"investments_percentage"`
	CryptoPercentage      float64 `json:"crypto_percentage"`
	CashPercentage        float64 `json:"cash_percentage"`
}

type Portfolio struct {
	UserID         string             `json:"user_id"`
	Membership     membership.Status  `json:"membership"`
	TotalPortfolio float64            `json:"total_portfolio"`
	Investments    InvestmentsSummary `json:"investments"`
	Crypto         Total              `json:"crypto"`
	Bank           Total              `json:"bank"`
	Breakdown      Breakdown          `json:"breakdown"`
}

// Build sums the three holdings and their shares of the whole.
func Build(userID string, status membership.Status, count int, crypto, bank float64) Portfolio {
	invested := status.TotalInvested
	total := invested + crypto + bank

	var b Breakdown
	if total > 0 {
		if invested > 0 {
			b.InvestmentsPercentage = invested / total * 100
		}
		b.CryptoPercentage = crypto / total * 100
		b.CashPercentage = bank / total * 100
	}

	return Portfolio{
		UserID:         userID,
		Membership:     status,
		TotalPortfolio: total,
		Investments:    InvestmentsSummary{Total: invested, Count: count},
		Crypto:         Total{Total: crypto},
		Bank:           Total{Total: bank},
		Breakdown:      b,
	}
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	list, err := h.Investments.List(ctx, userID)
	if err != nil {
		h.Log.Error("portfolio investments failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio"})
		return
	}
	status, err := h.Investments.Status(ctx, userID)
	if err != nil {
		h.Log.Error("portfolio membership failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio"})
		return
	}

	c.JSON(http.StatusOK, Build(userID, status, len(list), market.WalletTotalUSD, teller.FallbackTotalBalance))
}
