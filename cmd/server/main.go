package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/bootstrap"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	res, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		slog.Error("storage setup failed", "store", cfg.Store, "error", err)
		os.Exit(1)
	}

	// PostgreSQL log sink (ERROR+ async batch) and retention cleanup
	cleanupDone := make(chan struct{})
	var pgLogHandler *logging.PGHandler
	if res.DB != nil {
		pgLogHandler = logging.NewPGHandler(res.DB)
		logging.Setup(pgLogHandler)
		logging.StartCleanup(res.DB, cfg.LogRetention, cleanupDone)
	}

	// Services
	tokens := services.NewTokenService(cfg.JWTSecret)
	creds := services.NewCredentialStore(res.Store, cfg.BcryptCost)
	authService := services.NewAuthService(creds, tokens)
	userService := services.NewUserService(creds)
	ledger := services.NewAppointmentLedger(res.Store, res.Store)
	directory := services.NewPractitionerDirectory(res.Store, res.Store, res.Cache, cfg.DirectoryCacheTTL)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	appointmentHandler := handlers.NewAppointmentHandler(ledger)
	practitionerHandler := handlers.NewPractitionerHandler(directory)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(res.Store)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Env,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, tokens, authHandler, appointmentHandler, practitionerHandler, userHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)
	res.Close()

	slog.Info("server stopped")
}
