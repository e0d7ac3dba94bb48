package plans

import (
	"net/http"

	"investment-app/internal/domain/investments"
	"investment-app/internal/domain/membership"
	"investment-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	DB          *gorm.DB
	Investments *investments.Service
	Log         *zap.Logger
}

func NewHandler(db *gorm.DB, svc *investments.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{DB: db, Investments: svc, Log: log}
}

// snapshotPlan adds the month count older clients read instead of term_days.
type snapshotPlan struct {
	plans.Plan
	Term int `json:"term"`
}

// ListForUser returns the plans the caller's current tier unlocks.
func (h *Handler) ListForUser(c *gin.Context) {
	userID := c.GetString("user_id")

	status, err := h.Investments.Status(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("membership status failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": status.AvailablePlans, "membership": status})
}

// ListAll returns the persisted plan snapshot.
func (h *Handler) ListAll(c *gin.Context) {
	list, err := plans.List(h.DB.WithContext(c.Request.Context()))
	if err != nil {
		h.Log.Error("list plans failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	out := make([]snapshotPlan, 0, len(list))
	for _, p := range list {
		out = append(out, snapshotPlan{Plan: p, Term: membership.LegacyMonths(p.TermDays)})
	}
	c.JSON(http.StatusOK, gin.H{"plans": out})
}

// SyncPlans rebuilds the snapshot from the catalog.
func (h *Handler) SyncPlans(c *gin.Context) {
	n, err := plans.Sync(h.DB.WithContext(c.Request.Context()), h.Investments.Engine())
	if err != nil {
		h.Log.Error("plan sync failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync plans"})
		return
	}

	h.Log.Info("✅ plans synced", zap.Int("synced", n))
	c.JSON(http.StatusOK, gin.H{
		"message": "Plans synced",
		"synced":  n,
	})
}
