// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ozgesarac/ceyizdiz/internal/admin"
	"github.com/ozgesarac/ceyizdiz/internal/auth"
	"github.com/ozgesarac/ceyizdiz/internal/book"
	"github.com/ozgesarac/ceyizdiz/internal/bookid"
	"github.com/ozgesarac/ceyizdiz/internal/category"
	"github.com/ozgesarac/ceyizdiz/internal/config"
	"github.com/ozgesarac/ceyizdiz/internal/core"
	"github.com/ozgesarac/ceyizdiz/internal/dowry"
	"github.com/ozgesarac/ceyizdiz/internal/health"
	"github.com/ozgesarac/ceyizdiz/internal/image"
	"github.com/ozgesarac/ceyizdiz/internal/middleware"
	"github.com/ozgesarac/ceyizdiz/internal/payment"
	"github.com/ozgesarac/ceyizdiz/internal/server"
	"github.com/ozgesarac/ceyizdiz/internal/user"
	"github.com/ozgesarac/ceyizdiz/migrations"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if err := db.Migrate(ctx, migrations.Files); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	storage, err := core.NewStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("object storage configured",
		"bucket", cfg.Storage.Bucket,
	)

	mailer := core.NewMailer(cfg.Mail)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userRepo := user.NewRepository(db.DB)
	authRepo := auth.NewRepository(db.DB)
	categoryRepo := category.NewRepository(db.DB)
	dowryRepo := dowry.NewRepository(db.DB)
	bookRepo := book.NewRepository(db.DB)
	imageRepo := image.NewRepository(db.DB)
	paymentRepo := payment.NewRepository(db.DB)

	userSvc := user.NewService(userRepo)
	bookSvc := book.NewService(bookRepo)

	identifier := bookid.NewIdentifier(
		bookid.NewTesseractEngine(cfg.OCR.Languages),
		[]bookid.Provider{
			bookid.NewGoogleBooksProvider(nil),
			bookid.NewOpenLibraryProvider(nil),
		},
		cfg.OCR.TargetHeight,
		logger,
	)

	imageSvc := image.NewService(
		imageRepo,
		storage,
		dowryRepo,
		identifier,
		logger,
	)
	dowrySvc := dowry.NewService(dowryRepo, imageSvc, logger)
	categorySvc := category.NewService(
		categoryRepo,
		userSvc,
		dowrySvc,
		bookSvc,
		imageSvc,
		paymentRepo,
		logger,
	)

	authSvc := auth.NewService(
		authRepo,
		jwtManager,
		userSvc,
		mailer,
		categorySvc,
		redis.Client,
		logger,
	)

	billingClient := payment.NewBillingClient(cfg.Billing, nil)
	paymentSvc := payment.NewService(paymentRepo, billingClient, userSvc, logger)

	var rechecker *payment.Rechecker
	if cfg.Recheck.Enabled {
		rechecker = payment.NewRechecker(paymentSvc, redis, cfg.Recheck, logger)
		rechecker.Start(ctx)
	}

	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(userSvc)
	categoryHandler := category.NewHandler(categorySvc)
	dowryHandler := dowry.NewHandler(dowrySvc)
	bookHandler := book.NewHandler(bookSvc)
	imageHandler := image.NewHandler(imageSvc)
	paymentHandler := payment.NewHandler(paymentSvc)

	healthHandler := health.NewHandler(db, redis, storage)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		categoryHandler.RegisterRoutes(r, authenticator)
		dowryHandler.RegisterRoutes(r, authenticator)
		bookHandler.RegisterRoutes(r, authenticator)
		imageHandler.RegisterRoutes(r, authenticator)
		paymentHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if rechecker != nil {
		rechecker.Stop()
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
