// Package main is the entrypoint for the cloudtrim API server.
package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/cloudtrim/cloudtrim/internal/cache"
	"github.com/cloudtrim/cloudtrim/internal/config"
	"github.com/cloudtrim/cloudtrim/internal/metrics"
	"github.com/cloudtrim/cloudtrim/internal/router"
	"github.com/cloudtrim/cloudtrim/internal/server"
	"github.com/cloudtrim/cloudtrim/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	recorder := metrics.NewInMemory()
	deps := router.Deps{
		Config:   cfg,
		Logger:   logger,
		Metrics:  recorder,
		Recorder: recorder,
		Services: router.Services{
			Accounts:        service.NewAccountService(nil, logger),
			Costs:           service.NewCostService(nil, rand.Float64, recorder),
			Recommendations: service.NewRecommendationService(nil, recorder, logger),
			Billing: service.NewBillingService(service.BillingConfig{
				CheckoutURL:   cfg.CheckoutURL,
				WebhookSecret: cfg.StripeWebhookSecret,
			}, nil, recorder, logger),
		},
	}

	// Redis is optional; without it the API runs without rate limiting.
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		deps.Health = cacheClient
		deps.Limiter = cacheClient
		logger.Info("connected to Redis", slog.Bool("rate_limit", cfg.RateLimitActive()))
	}

	srv := server.New(router.New(deps), server.Config{
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error { return cacheClient.Close() })
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"webhook_signatures", cfg.StripeWebhookSecret != "",
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
