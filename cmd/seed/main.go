package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Raymond9734/crm-backend/internal/cache"
	"github.com/Raymond9734/crm-backend/internal/config"
	"github.com/Raymond9734/crm-backend/internal/db"
	"github.com/Raymond9734/crm-backend/internal/repository"
	"github.com/Raymond9734/crm-backend/internal/seed"
)

func main() {
	// Progress lines go to stdout via the seeder; the logger reports
	// operational errors to stderr so the two streams stay separate.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	database, err := db.New(cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.EnsureSchema(ctx, database.DB); err != nil {
		logger.Error("failed to ensure schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	customerRepo := repository.NewCustomerRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)

	seeder := seed.NewSeeder(customerRepo, productRepo, orderRepo, os.Stdout)
	if err := seeder.Run(ctx); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Drop any cached listings so the API serves the seeded data right away
	if cfg.Cache.RedisURL != "" {
		listCache, err := cache.NewRedisCache(cache.RedisConfig{
			URL: cfg.Cache.RedisURL,
			TTL: time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		}, logger)
		if err != nil {
			logger.Warn("cache invalidation skipped", slog.String("error", err.Error()))
			return
		}
		defer listCache.Close()
		listCache.Invalidate(ctx, cache.CustomerListKey, cache.ProductListKey, cache.OrderListKey)
	}
}
