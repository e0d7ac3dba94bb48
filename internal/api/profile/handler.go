package profile

import (
	"errors"
	"net/http"
	"time"

	"investment-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Handler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{DB: db, Log: log}
}

type PreferencesDTO struct {
	UserID               string     `json:"user_id"`
	Theme                string     `json:"theme"`
	OnboardingComplete   bool       `json:"onboarding_complete"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	UpdatedAt            *time.Time `json:"updated_at"`
}

func toDTO(p users.Preferences) PreferencesDTO {
	dto := PreferencesDTO{
		UserID:               p.UserID,
		Theme:                p.Theme,
		OnboardingComplete:   p.OnboardingComplete,
		NotificationsEnabled: p.NotificationsEnabled,
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		dto.UpdatedAt = &t
	}
	return dto
}

type saveInput struct {
	Theme                string `json:"theme" binding:"omitempty,oneof=dark light"`
	OnboardingComplete   bool   `json:"onboarding_complete"`
	NotificationsEnabled *bool  `json:"notifications_enabled"`
}

// SavePreferences upserts the caller's preferences. Omitted fields keep their defaults.
func (h *Handler) SavePreferences(c *gin.Context) {
	var input saveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	prefs := users.DefaultPreferences(userID)
	if input.Theme != "" {
		prefs.Theme = input.Theme
	}
	prefs.OnboardingComplete = input.OnboardingComplete
	if input.NotificationsEnabled != nil {
		prefs.NotificationsEnabled = *input.NotificationsEnabled
	}
	prefs.UpdatedAt = time.Now()

	err := h.DB.WithContext(c.Request.Context()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "onboarding_complete", "notifications_enabled", "updated_at"}),
	}).Create(&prefs).Error
	if err != nil {
		h.Log.Error("save preferences failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved", "preferences": toDTO(prefs)})
}

// GetPreferences returns stored preferences, or the defaults. Users may only read their own.
func (h *Handler) GetPreferences(c *gin.Context) {
	userID := c.Param("user_id")
	if userID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var prefs users.Preferences
	err := h.DB.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&prefs).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusOK, toDTO(users.DefaultPreferences(userID)))
		return
	case err != nil:
		h.Log.Error("load preferences failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load preferences"})
		return
	}
	c.JSON(http.StatusOK, toDTO(prefs))
}
