package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/cache"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/health"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/logger"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/queue"
	repository "github.com/aaravmahajanofficial/minimal-ecommerce/internal/repositories"
	service "github.com/aaravmahajanofficial/minimal-ecommerce/internal/services"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/telemetry"
)

func main() {
	cfg := config.MustLoad()

	_, logCloser := logger.Setup(cfg.Log)
	defer logCloser.Close()

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer productCache.Close()

	queueClient := queue.NewClient(cfg)
	defer queueClient.Close()

	healthChecker, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour

	services := &appServices{
		Users:    service.NewUserService(repos.User, repository.NewRateLimitRepo(redisClient, cfg.RateConfig), jwtKey, tokenTTL),
		Products: service.NewProductService(repos.Product, productCache, cfg.Cache.DefaultTTL),
		Carts:    service.NewCartService(repos.User, repos.Product, repos.Cart, repos.Transactor),
		Checkout: service.NewCheckoutService(repos.User, repos.Product, repos.Cart, repos.Order, repos.Transactor, queueClient),
		Orders:   service.NewOrderService(repos.Order),
	}

	slog.Info("storage initialized",
		slog.String("env", cfg.Env),
		slog.String("version", health.Version),
		slog.Bool("queue_enabled", queueClient.Enabled()),
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(cfg, jwtKey, services, healthChecker.Handler()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
