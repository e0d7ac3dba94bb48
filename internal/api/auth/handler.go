package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"investment-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	DB       *gorm.DB
	BotToken string
	Log      *zap.Logger
}

func NewHandler(db *gorm.DB, botToken string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{DB: db, BotToken: botToken, Log: log}
}

type walletInput struct {
	Message   string `json:"message" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Address   string `json:"address" binding:"required"`
}

// WalletLogin verifies a personal_sign signature and signs the wallet in.
// A bad signature is a normal answer ({valid: false}), not an HTTP error.
func (h *Handler) WalletLogin(c *gin.Context) {
	var input walletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recovered, ok := VerifyWallet(input.Message, input.Signature, input.Address)
	if !ok {
		h.Log.Info("wallet signature rejected", zap.String("address", input.Address))
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Invalid signature"})
		return
	}

	user, err := h.upsertWalletUser(recovered)
	if err != nil {
		h.Log.Error("wallet user upsert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	token, err := GenerateToken(user)
	if err != nil {
		h.Log.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"address": recovered,
		"token":   token,
		"user_id": user.ID,
	})
}

func (h *Handler) upsertWalletUser(address string) (users.User, error) {
	address = strings.ToLower(address)
	now := time.Now()

	var user users.User
	err := h.DB.Where("wallet_address = ?", address).First(&user).Error
	switch {
	case err == nil:
		if err := h.DB.Model(&user).Update("last_login_at", now).Error; err != nil {
			return users.User{}, fmt.Errorf("touch wallet user: %w", err)
		}
		return user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return users.User{}, fmt.Errorf("find wallet user: %w", err)
	}

	user = users.User{
		AuthType:      users.AuthWallet,
		WalletAddress: &address,
		LastLoginAt:   &now,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return users.User{}, fmt.Errorf("create wallet user: %w", err)
	}
	h.Log.Info("wallet user created", zap.String("user_id", user.ID))
	return user, nil
}

// TelegramWebApp signs in a Telegram Mini App user from its signed init data.
func (h *Handler) TelegramWebApp(c *gin.Context) {
	var input struct {
		InitData string `json:"initData"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.BotToken == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Telegram bot token not configured"})
		return
	}

	tgUser, err := ValidateInitData(input.InitData, h.BotToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.upsertTelegramUser(tgUser)
	if err != nil {
		h.Log.Error("telegram user upsert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	token, err := GenerateToken(user)
	if err != nil {
		h.Log.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":          user.ID,
			"telegram_id": tgUser.ID,
			"first_name":  user.FirstName,
			"last_name":   user.LastName,
			"username":    user.TelegramUsername,
			"auth_type":   users.AuthTelegram,
		},
		"authenticated": true,
	})
}

func (h *Handler) upsertTelegramUser(tg TelegramUser) (users.User, error) {
	now := time.Now()
	lang := tg.LanguageCode
	if lang == "" {
		lang = "en"
	}

	var user users.User
	err := h.DB.Where("telegram_id = ?", tg.ID).First(&user).Error
	switch {
	case err == nil:
		user.TelegramUsername = tg.Username
		user.FirstName = tg.FirstName
		user.LastName = tg.LastName
		user.LanguageCode = lang
		user.PhotoURL = tg.PhotoURL
		user.LastLoginAt = &now
		if err := h.DB.Save(&user).Error; err != nil {
			return users.User{}, fmt.Errorf("update telegram user: %w", err)
		}
		return user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return users.User{}, fmt.Errorf("find telegram user: %w", err)
	}

	id := tg.ID
	user = users.User{
		AuthType:         users.AuthTelegram,
		TelegramID:       &id,
		TelegramUsername: tg.Username,
		FirstName:        tg.FirstName,
		LastName:         tg.LastName,
		LanguageCode:     lang,
		PhotoURL:         tg.PhotoURL,
		Email:            fmt.Sprintf("telegram_%d@vault.app", tg.ID),
		LastLoginAt:      &now,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return users.User{}, fmt.Errorf("create telegram user: %w", err)
	}
	h.Log.Info("telegram user created", zap.String("user_id", user.ID), zap.Int64("telegram_id", tg.ID))
	return user, nil
}
