package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collateral-ledger/config"
	httpHandler "collateral-ledger/internal/adapter/http/handler"
	"collateral-ledger/internal/adapter/oracle"
	"collateral-ledger/internal/adapter/settlement"
	pgStorage "collateral-ledger/internal/adapter/storage/postgres"
	redisStorage "collateral-ledger/internal/adapter/storage/redis"
	"collateral-ledger/internal/core/ports"
	"collateral-ledger/internal/service"
	"collateral-ledger/pkg/logger"
	"collateral-ledger/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Collateral Ledger")

	ctx := context.Background()

	// Run database migrations
	if err := pgStorage.Migrate(cfg.Database.DSN()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Database migrations applied")

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	userRepo := pgStorage.NewUserRepo(pool)
	vaultRepo := pgStorage.NewVaultRepo(pool)
	treasuryRepo := pgStorage.NewTreasuryRepo(pool)
	yieldRepo := pgStorage.NewYieldAccountRepo(pool)
	spendingRepo := pgStorage.NewSpendingAccountRepo(pool)
	merchantRepo := pgStorage.NewMerchantAccountRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize external adapters
	priceOracle := oracle.NewClient(cfg.Oracle.Endpoint, nil, log)
	bridge := settlement.NewBridge(cfg.Settlement.Endpoint, nil, log)

	// Metrics
	ledgerMx := metrics.NewLedger(prometheus.DefaultRegisterer)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	authSvc := service.NewAuthService(userRepo, hashSvc, tokenSvc, log)
	vaultSvc := service.NewVaultService(vaultRepo, transactor, bridge, cfg.Ledger.MinReserve, log)
	stakingSvc := service.NewStakingService(vaultRepo, treasuryRepo, yieldRepo, transactor, log)
	spendingSvc := service.NewSpendingService(spendingRepo, vaultRepo, transactor, log)
	collateralSvc := service.NewCollateralService(
		spendingRepo,
		yieldRepo,
		vaultRepo,
		treasuryRepo,
		transactor,
		priceOracle,
		cfg.Oracle.FeedID,
		cfg.Oracle.MaxAge,
		ledgerMx,
		log,
	)
	paymentSvc := service.NewPaymentService(
		spendingRepo,
		merchantRepo,
		transactor,
		bridge,
		idempotencyCache,
		ledgerMx,
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		VaultSvc:       vaultSvc,
		StakingSvc:     stakingSvc,
		SpendingSvc:    spendingSvc,
		CollateralSvc:  collateralSvc,
		PaymentSvc:     paymentSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Metrics:        promhttp.Handler(),
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
