package handler

import (
	"net/http"

	"collateral-ledger/internal/adapter/http/middleware"
	"collateral-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	VaultSvc       ports.VaultService
	StakingSvc     ports.StakingService
	SpendingSvc    ports.SpendingService
	CollateralSvc  ports.CollateralService
	PaymentSvc     ports.PaymentService
	TokenSvc       ports.TokenService
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Metrics        http.Handler // nil = metrics endpoint disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	vaultHandler := NewVaultHandler(deps.VaultSvc)
	vault := v1.Group("/vault", jwtAuth)
	{
		vault.POST("", rl("ledger"), vaultHandler.Create)
		vault.GET("", rl("ledger"), vaultHandler.Get)
		vault.POST("/deposit", rl("ledger"), vaultHandler.Deposit)
		vault.POST("/withdraw", rl("ledger"), vaultHandler.Withdraw)
	}

	stakingHandler := NewStakingHandler(deps.StakingSvc)
	v1.POST("/treasury", jwtAuth, rl("ledger"), stakingHandler.CreateTreasury)
	v1.POST("/yield", jwtAuth, rl("ledger"), stakingHandler.CreateYieldAccount)
	staking := v1.Group("/staking", jwtAuth)
	{
		staking.POST("/stake", rl("ledger"), stakingHandler.Stake)
		staking.POST("/unstake", rl("ledger"), stakingHandler.Unstake)
	}

	spendingHandler := NewSpendingHandler(deps.SpendingSvc)
	spending := v1.Group("/spending", jwtAuth)
	{
		spending.POST("", rl("ledger"), spendingHandler.Create)
		spending.POST("/limit", rl("ledger"), spendingHandler.UpdateLimit)
		spending.POST("/authorize", rl("ledger"), spendingHandler.Authorize)
		spending.POST("/reset", rl("ledger"), spendingHandler.Reset)
	}

	collateralHandler := NewCollateralHandler(deps.CollateralSvc)
	v1.GET("/collateral/position", jwtAuth, rl("ledger"), collateralHandler.Position)
	v1.POST("/liquidation", jwtAuth, rl("liquidation"), collateralHandler.Liquidate)

	paymentHandler := NewPaymentHandler(deps.PaymentSvc)
	v1.POST("/merchants", jwtAuth, rl("ledger"), paymentHandler.RegisterMerchant)
	v1.POST("/payments", jwtAuth, rl("payments"), paymentHandler.ProcessPayment)

	return r
}
