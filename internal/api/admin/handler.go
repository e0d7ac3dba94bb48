package admin

import (
	"errors"
	"net/http"
	"time"

	"investment-app/internal/domain/investments"
	"investment-app/internal/domain/membership"
	"investment-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	DB     *gorm.DB
	Engine *membership.Engine
	Log    *zap.Logger
}

func NewHandler(db *gorm.DB, engine *membership.Engine, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{DB: db, Engine: engine, Log: log}
}

type AdminUser struct {
	ID               string             `json:"id"`
	AuthType         string             `json:"auth_type"`
	WalletAddress    *string            `json:"wallet_address,omitempty"`
	TelegramID       *int64             `json:"telegram_id,omitempty"`
	TelegramUsername string             `json:"telegram_username,omitempty"`
	FirstName        string             `json:"first_name"`
	LastName         string             `json:"last_name"`
	Email            string             `json:"email"`
	Role             string             `json:"role"`
	TotalInvested    float64            `json:"total_invested"`
	MembershipLevel  membership.TierKey `json:"membership_level"`
	LastLoginAt      *time.Time         `json:"last_login_at,omitempty"`
	CreatedAt        string             `json:"created_at"`
}

type AdminInvestment struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	Rate            float64 `json:"rate"`
	Term            int     `json:"term"`
	PlanID          string  `json:"plan_id"`
	MembershipLevel string  `json:"membership_level"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers       int                        `json:"total_users"`
	TotalInvested    float64                    `json:"total_invested"`
	TotalInvestments int                        `json:"total_investments"`
	UsersPerTier     map[membership.TierKey]int `json:"users_per_tier"`
}

type userTotal struct {
	UserID string
	Total  float64
}

// totalsByUser sums investment amounts per user.
func (h *Handler) totalsByUser(db *gorm.DB) (map[string]float64, error) {
	var rows []userTotal
	err := db.Model(&investments.Investment{}).
		Select("user_id, COALESCE(SUM(amount), 0) AS total").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		totals[r.UserID] = r.Total
	}
	return totals, nil
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	db := h.DB.WithContext(c.Request.Context())

	var all []users.User
	if err := db.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	totals, err := h.totalsByUser(db)
	if err != nil {
		h.Log.Error("sum investments per user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	adminUsers := make([]AdminUser, 0, len(all))
	for _, u := range all {
		total := totals[u.ID]
		adminUsers = append(adminUsers, AdminUser{
			ID:               u.ID,
			AuthType:         u.AuthType,
			WalletAddress:    u.WalletAddress,
			TelegramID:       u.TelegramID,
			TelegramUsername: u.TelegramUsername,
			FirstName:        u.FirstName,
			LastName:         u.LastName,
			Email:            u.Email,
			Role:             u.Role,
			TotalInvested:    total,
			MembershipLevel:  h.Engine.Resolve(total).Level,
			LastLoginAt:      u.LastLoginAt,
			CreatedAt:        u.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func (h *Handler) ListAllInvestments(c *gin.Context) {
	var list []investments.Investment
	err := h.DB.WithContext(c.Request.Context()).Order("created_at DESC").Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load investments"})
		return
	}

	result := make([]AdminInvestment, 0, len(list))
	for _, inv := range list {
		result = append(result, AdminInvestment{
			ID:              inv.ID,
			UserID:          inv.UserID,
			Name:            inv.Name,
			Amount:          inv.Amount,
			Rate:            inv.Rate,
			Term:            inv.Term,
			PlanID:          inv.PlanID,
			MembershipLevel: inv.MembershipLevel,
			Status:          inv.Status,
			CreatedAt:       inv.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetAdminStats(c *gin.Context) {
	db := h.DB.WithContext(c.Request.Context())

	var totalUsers, totalInvestments int64
	var totalInvested float64

	err := db.Model(&users.User{}).Count(&totalUsers).Error
	if err == nil {
		err = db.Model(&investments.Investment{}).Count(&totalInvestments).Error
	}
	if err == nil {
		err = db.Model(&investments.Investment{}).Select("COALESCE(SUM(amount), 0)").Scan(&totalInvested).Error
	}
	if err != nil {
		h.Log.Error("admin stats query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	totals, err := h.totalsByUser(db)
	if err != nil {
		h.Log.Error("sum investments per user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	perTier := map[membership.TierKey]int{membership.TierNone: 0}
	for _, t := range h.Engine.Catalog().Tiers() {
		perTier[t.Key] = 0
	}
	for _, total := range totals {
		perTier[h.Engine.Resolve(total).Level]++
	}
	// users without a single investment
	perTier[membership.TierNone] += int(totalUsers) - len(totals)
	if perTier[membership.TierNone] < 0 {
		perTier[membership.TierNone] = 0
	}

	c.JSON(http.StatusOK, AdminStats{
		TotalUsers:       int(totalUsers),
		TotalInvested:    totalInvested,
		TotalInvestments: int(totalInvestments),
		UsersPerTier:     perTier,
	})
}

func (h *Handler) GetUserDetails(c *gin.Context) {
	userID := c.Param("id")
	db := h.DB.WithContext(c.Request.Context())

	var user users.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	list := []investments.Investment{}
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch investments"})
		return
	}

	var total float64
	for _, inv := range list {
		total += inv.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"investments": list,
		"membership":  h.Engine.Resolve(total),
	})
}
