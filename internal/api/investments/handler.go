package investments

import (
	"errors"
	"net/http"

	"investment-app/internal/domain/investments"
	"investment-app/internal/domain/membership"

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

// createInput leaves range checks to the membership validator so every refusal
// carries a reason.
type createInput struct {
	Name   string   `json:"name"`
	Amount *float64 `json:"amount"`
	Rate   *float64 `json:"rate"`
	Term   *int     `json:"term"` // months
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	list, err := h.Investments.List(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("list investments failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load investments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": list})
}

func (h *Handler) Create(c *gin.Context) {
	var input createInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Amount == nil || input.Rate == nil || input.Term == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount, rate and term are required"})
		return
	}

	inv, err := h.Investments.Create(c.Request.Context(), c.GetString("user_id"), investments.CreateInput{
		Name:   input.Name,
		Amount: *input.Amount,
		Rate:   *input.Rate,
		Term:   *input.Term,
	})

	var rej *membership.RejectionError
	switch {
	case errors.As(err, &rej):
		c.JSON(http.StatusBadRequest, gin.H{"error": rej.Detail, "reason": rej.Reason})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create investment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investment": inv,
		"message":    "Investment created successfully",
	})
}
