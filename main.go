package main

import (
	"context"
	"strings"
	"time"

	"investment-app/config"
	"investment-app/database"
	routes "investment-app/internal/app/http"
	"investment-app/internal/app/http/middleware"
	"investment-app/internal/domain/investments"
	"investment-app/internal/domain/membership"
	"investment-app/internal/domain/plans"
	"investment-app/internal/infra/cache"
	"investment-app/internal/infra/coingecko"
	"investment-app/internal/infra/lock"
	"investment-app/internal/infra/logger"
	"investment-app/internal/infra/metrics"
	"investment-app/internal/infra/teller"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	log, err := logger.New(config.LOG_LEVEL, config.LOG_FORMAT)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database.InitDB(config.DB_DRIVER, config.DB_URL, log)

	engine := membership.NewEngine(membership.DefaultCatalog())
	if n, err := plans.Sync(database.DB, engine); err != nil {
		log.Fatal("❌ Plan sync failed", zap.Error(err))
	} else {
		log.Info("✅ Investment plans synced", zap.Int("plans", n))
	}

	var locker lock.Locker = lock.NewKeyedMutex()
	var priceCache cache.Cache = cache.NewMemory()
	if config.REDIS_URL != "" {
		opts, err := redis.ParseURL(config.REDIS_URL)
		if err != nil {
			log.Fatal("❌ Invalid REDIS_URL", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("❌ Redis unreachable", zap.Error(err))
		}
		cancel()
		defer rdb.Close()

		locker = lock.NewRedisLocker(rdb, config.LOCK_TTL)
		priceCache = cache.NewRedisCache(rdb)
		log.Info("✅ Redis connected, using distributed locks and cache")
	}

	svc := investments.NewService(database.DB, engine, locker, log)

	limiter := middleware.NewRateLimiter(config.RATE_LIMIT_RPS, config.RATE_LIMIT_BURST)
	go func() {
		for range time.Tick(time.Minute) {
			limiter.Cleanup(time.Now())
		}
	}()

	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(log), metrics.Middleware())

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.CORS_ORIGIN, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: config.CORS_ORIGIN != "*",
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		DB:          database.DB,
		Investments: svc,
		Prices:      coingecko.New(config.COINGECKO_BASE_URL, nil),
		Accounts:    teller.New(config.TELLER_BASE_URL, config.TELLER_API_KEY, nil),
		Cache:       priceCache,
		PriceTTL:    config.PRICE_CACHE_TTL,
		BotToken:    config.TELEGRAM_BOT_TOKEN,
		RateLimiter: limiter,
		Log:         log,
	})

	log.Info("🚀 Listening", zap.String("port", config.PORT))
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal("❌ Server stopped", zap.Error(err))
	}
}
