package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"finapp/internal/config"
	"finapp/internal/database"
	"finapp/internal/logger"
	"finapp/internal/middleware"
	"finapp/internal/password"
	"finapp/internal/router"
)

// @title           Finapp API
// @version         1.0
// @description     Personal finance backend: transactions, planning records, budgets and spending insights.

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(cfg.Env, cfg.LogFile)
	defer logger.Sync()
	log := logger.Get()

	// Open the store and bring the schema up to date
	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	demoID, err := database.SeedDemoUser(dbManager.DB(), hasher, cfg.DemoEmail, cfg.DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	var defaultUserID string
	if cfg.DefaultIdentityEnabled() {
		defaultUserID = demoID
		log.Warnw("requests without a bearer token act as the demo user", "email", cfg.DemoEmail)
	}

	handler, err := router.New(dbManager.DB(), router.Options{
		Tokens:         middleware.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpirationDur),
		Hasher:         hasher,
		DefaultUserID:  defaultUserID,
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateBurst:  cfg.AuthRateBurst,
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting finapp server on port %s (auth mode %s)", cfg.Port, cfg.AuthMode)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped gracefully")
	return nil
}
