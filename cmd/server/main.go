package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bazario/bazario/internal"
	"github.com/bazario/bazario/internal/billing"
	"github.com/bazario/bazario/internal/events"
	"github.com/bazario/bazario/internal/handler"
	"github.com/bazario/bazario/internal/middleware"
	"github.com/bazario/bazario/internal/repository"
	"github.com/bazario/bazario/internal/service"
	"github.com/bazario/bazario/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info().Msg("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info().Msg("Database connection established")

	// Run migrations
	logger.Info().Msg("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info().Msg("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	repo := repository.New(pool)

	// Event publisher; orders and payments flow to NATS when configured
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.NewNatsPublisher(cfg.NatsURL, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info().Str("url", cfg.NatsURL).Msg("NATS publisher initialized")
	}

	metrics := telemetry.NewBusinessMetrics("bazario")

	// Billing providers
	stripeProvider, err := billing.NewStripeProvider(cfg.Stripe)
	if err != nil {
		return fmt.Errorf("failed to initialize Stripe provider: %w", err)
	}
	logger.Info().Bool("test_mode", cfg.Stripe.IsTestMode()).Msg("Stripe billing provider initialized")

	providers := []billing.Provider{stripeProvider}
	if cfg.PayPal.ClientID != "" {
		paypalProvider, err := billing.NewPayPalProvider(cfg.PayPal)
		if err != nil {
			return fmt.Errorf("failed to initialize PayPal provider: %w", err)
		}
		providers = append(providers, paypalProvider)
		logger.Info().Bool("sandbox", cfg.PayPal.Sandbox).Msg("PayPal billing provider initialized")
	}

	// Services
	shippingService := service.NewShippingService(repo)
	cartService := service.NewCartService(repo, logger, metrics)
	couponService := service.NewCouponService(repo, logger, metrics)
	checkoutService := service.NewCheckoutService(repo, shippingService, publisher, logger, metrics)
	orderService := service.NewOrderService(repo, logger)
	paymentService := service.NewPaymentService(repo, providers, publisher, logger, metrics, cfg.Currency)
	webhookService := service.NewWebhookService(repo, publisher, logger)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.NewHTTPMetrics("bazario").Middleware())

	h := handler.New(
		cartService,
		couponService,
		checkoutService,
		orderService,
		paymentService,
		stripeProvider,
		webhookService,
		logger,
		cfg.Env == "prod",
	)
	h.RegisterRoutes(e)

	addr := fmt.Sprintf(":%d", cfg.Port)
	go func() {
		logger.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
