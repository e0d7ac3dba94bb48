package users

import (
	"errors"
	"net/http"

	"investment-app/internal/domain/investments"
	"investment-app/internal/domain/users"

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

func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()

	var user users.User
	if err := h.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	status, err := h.Investments.Status(ctx, userID)
	if err != nil {
		h.Log.Error("membership status failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load membership"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:       BuildUserDTO(user),
		Membership: BuildMembershipDTO(status),
	})
}
