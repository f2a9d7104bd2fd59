package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/cache"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/logger"
	repository "github.com/aaravmahajanofficial/minimal-ecommerce/internal/repositories"
	service "github.com/aaravmahajanofficial/minimal-ecommerce/internal/services"
)

func main() {
	demoEmail := flag.String("demo-email", "demo@example.com", "email of the demo user")
	demoPassword := flag.String("demo-password", "demo-password", "password of the demo user")

	cfg := config.MustLoad()
	if !flag.Parsed() {
		flag.Parse()
	}

	_, logCloser := logger.Setup(cfg.Log)
	defer logCloser.Close()

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repos.Close()

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer productCache.Close()

	users := service.NewUserService(repos.User, repository.NewRateLimitRepo(redisClient, cfg.RateConfig), []byte(cfg.Security.JWTKey), 0)
	products := service.NewProductService(repos.Product, productCache, cfg.Cache.DefaultTTL)

	seeder := &Seeder{Users: users, Products: products}

	result, err := seeder.Run(context.Background(), demoUser(*demoEmail, *demoPassword), defaultCatalog)
	if err != nil {
		slog.Error("❌ Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("✅ Seeding complete",
		slog.Int("products_created", result.ProductsCreated),
		slog.Int("products_skipped", result.ProductsSkipped),
		slog.Bool("user_created", result.UserCreated),
	)
}
