package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/logger"
	repository "github.com/aaravmahajanofficial/minimal-ecommerce/internal/repositories"
	service "github.com/aaravmahajanofficial/minimal-ecommerce/internal/services"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/telemetry"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/worker"
	"github.com/aaravmahajanofficial/minimal-ecommerce/pkg/sendgrid"
)

func main() {
	cfg := config.MustLoad()

	_, logCloser := logger.Setup(cfg.Log)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer shutdownTracing(context.Background())

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repos.Close()

	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	notifications := service.NewNotificationService(repos.Notification, repos.Order, repos.User, repos.Product, emailService)

	svc := worker.NewService(cfg, worker.NewConsumer(notifications))

	if err := svc.Run(ctx); err != nil {
		slog.Error("❌ Worker stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("✅ Worker stopped")
}
