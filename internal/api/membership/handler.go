package membership

import (
	"net/http"

	"investment-app/internal/domain/investments"

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

func (h *Handler) GetStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	status, err := h.Investments.Status(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("membership status failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load membership status"})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) ListTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": BuildTierDTOs(h.Investments.Engine())})
}
