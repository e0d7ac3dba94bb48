package routes

import (
	"time"

	adminapi "investment-app/internal/api/admin"
	authapi "investment-app/internal/api/auth"
	"investment-app/internal/api/health"
	investmentsapi "investment-app/internal/api/investments"
	"investment-app/internal/api/market"
	membershipapi "investment-app/internal/api/membership"
	plansapi "investment-app/internal/api/plans"
	"investment-app/internal/api/portfolio"
	"investment-app/internal/api/profile"
	usersapi "investment-app/internal/api/users"
	"investment-app/internal/app/http/middleware"
	"investment-app/internal/domain/investments"
	"investment-app/internal/infra/cache"
	"investment-app/internal/infra/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	Investments *investments.Service
	Prices      market.PriceSource
	Accounts    market.AccountSource
	Cache       cache.Cache
	PriceTTL    time.Duration
	BotToken    string
	RateLimiter *middleware.RateLimiter
	Log         *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.RateLimiter == nil {
		d.RateLimiter = middleware.NewRateLimiter(5, 10)
	}

	authH := authapi.NewHandler(d.DB, d.BotToken, d.Log)
	membershipH := membershipapi.NewHandler(d.Investments, d.Log)
	plansH := plansapi.NewHandler(d.DB, d.Investments, d.Log)
	investmentsH := investmentsapi.NewHandler(d.Investments, d.Log)
	profileH := profile.NewHandler(d.DB, d.Log)
	usersH := usersapi.NewHandler(d.DB, d.Investments, d.Log)
	portfolioH := portfolio.NewHandler(d.Investments, d.Log)
	marketH := market.NewHandler(d.Prices, d.Accounts, d.Cache, d.PriceTTL, d.Log)
	adminH := adminapi.NewHandler(d.DB, d.Investments.Engine(), d.Log)

	r.GET("/", health.Root)
	r.GET("/api/health", health.Check(d.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/api/membership/tiers", membershipH.ListTiers)
	r.GET("/api/investment-plans/all", plansH.ListAll)
	r.GET("/api/wallet/balance/:address", marketH.GetWalletBalance)

	// Signed payloads must reach the verifiers byte for byte, so no sanitization here
	public := r.Group("/api")
	public.POST("/auth/wallet", authH.WalletLogin)
	public.POST("/wallet/verify-signature", authH.WalletLogin)
	public.POST("/auth/telegram/webapp", authH.TelegramWebApp)

	// Third-party proxies
	proxied := r.Group("/api")
	proxied.Use(d.RateLimiter.Middleware())
	proxied.GET("/prices", marketH.GetPrices)
	proxied.GET("/bank/accounts", marketH.GetBankAccounts)
	proxied.GET("/bank/balance", marketH.GetBankBalance)

	// Authenticated, user input sanitized
	auth := r.Group("/api")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", usersH.GetCurrentUser)
	auth.GET("/membership/status", membershipH.GetStatus)
	auth.GET("/investment-plans", plansH.ListForUser)
	auth.GET("/investments", investmentsH.List)
	auth.POST("/investments", investmentsH.Create)
	auth.POST("/profile", profileH.SavePreferences)
	auth.GET("/profile/:user_id", profileH.GetPreferences)
	auth.GET("/portfolio", portfolioH.GetPortfolio)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminH.ListAllUsers)
	admin.GET("/user/:id", adminH.GetUserDetails)
	admin.GET("/investments", adminH.ListAllInvestments)
	admin.GET("/stats", adminH.GetAdminStats)
	admin.POST("/sync-plans", plansH.SyncPlans)
}
