package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bankist-labs/bankist-api/configs"
	"github.com/bankist-labs/bankist-api/internal/handlers"
	"github.com/bankist-labs/bankist-api/internal/repositories"
	"github.com/bankist-labs/bankist-api/internal/services"
	"github.com/bankist-labs/bankist-api/pkg"
	"github.com/bankist-labs/bankist-api/pkg/cache"
	middleware "github.com/bankist-labs/bankist-api/pkg/middlewares"
	"github.com/bankist-labs/bankist-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	// Load config
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	// Seed the in-memory account store
	seed, err := repositories.LoadSeed(logger, cfg.SeedFile)
	if err != nil {
		return nil, nil, pkg.NewAppError(pkg.ErrServerCode, "failed to load seed accounts", err)
	}
	store := repositories.NewInMemoryStore(logger, seed)
	logger.Info("account_store_seeded", zap.Int("accounts", store.Len()))

	// Redis is optional: without it the loan limiter runs locally only
	var redisClient *redis.Client
	var closeRedis func()
	if !utils.IsEmpty(cfg.RedisAddr) {
		redisClient, closeRedis, err = cache.New(ctx, logger, cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			UseTLS:   cfg.RedisTLS,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	loanLimiter := pkg.NewDistributedLimiter(redisClient, "global:loan_rate", cfg.LoanRate, cfg.LoanBurst, time.Minute, logger)

	// Setup dependencies
	sessions := services.NewSessionManager(logger, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	bankService := services.NewBankService(logger, store, sessions)
	accountHandler := handlers.NewAccountHandler(logger, bankService)
	baseHandler := handlers.NewBaseHandler(logger)

	// Router
	r := gin.Default()

	api := r.Group("/api/v1")
	api.Use(middleware.TraceID())
	api.Use(middleware.Metrics())

	accountHandler.RegisterRoutes(api, middleware.RateLimit(loanLimiter))
	baseHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	cleanup := func() {
		sessions.Stop()
		if closeRedis != nil {
			closeRedis()
		}
	}

	return srv, cleanup, nil
}
