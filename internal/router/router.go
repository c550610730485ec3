// Package router assembles the HTTP routes and middleware chain.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cloudtrim/cloudtrim/internal/config"
	"github.com/cloudtrim/cloudtrim/internal/handler"
	"github.com/cloudtrim/cloudtrim/internal/metrics"
	"github.com/cloudtrim/cloudtrim/internal/middleware"
	"github.com/cloudtrim/cloudtrim/internal/service"
)

// Services are the domain services the routes delegate to.
type Services struct {
	Accounts        *service.AccountService
	Costs           *service.CostService
	Recommendations *service.RecommendationService
	Billing         *service.BillingService
}

// Deps holds everything New needs.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Clock    service.Clock
	Services Services
	Metrics  metrics.Snapshotter

	// Optional. Rate limiting is installed on /api only when both
	// Limiter is set and Config.RateLimitActive() reports true.
	Limiter  middleware.Limiter
	Health   handler.HealthChecker
	Recorder metrics.Recorder
}

// New configures the chi router with all routes and middleware.
func New(d Deps) *chi.Mux {
	cfg := d.Config
	production := cfg.IsProduction()
	h := handler.New(d.Logger, production)

	healthHandler := handler.NewHealthHandler(d.Clock, d.Health)
	authHandler := handler.NewAuthHandler(d.Services.Accounts)
	awsHandler := handler.NewAWSHandler(d.Services.Accounts)
	costHandler := handler.NewCostHandler(d.Services.Costs)
	recHandler := handler.NewRecommendationHandler(d.Services.Recommendations)
	billingHandler := handler.NewBillingHandler(d.Services.Billing)
	metricsHandler := handler.NewMetricsHandler(d.Metrics)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recoverer(d.Logger, production))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(middleware.JSONBody(d.Logger, production))

	r.Get("/health", healthHandler.Health)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Route("/api", func(r chi.Router) {
		if d.Limiter != nil && cfg.RateLimitActive() {
			r.Use(middleware.RateLimitIP(middleware.RateLimitConfig{
				Logger:  d.Logger,
				Limiter: d.Limiter,
				Metrics: d.Recorder,
				RPS:     cfg.RateLimitRPS,
				Burst:   cfg.RateLimitBurst,
			}))
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/google", authHandler.Google)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/aws", func(r chi.Router) {
			r.Post("/connect", awsHandler.Connect)
			r.Get("/status", awsHandler.Status)
		})

		r.Route("/costs", func(r chi.Router) {
			r.Get("/", costHandler.Summary)
			r.Get("/history", costHandler.History)
			r.Post("/refresh", costHandler.Refresh)
		})

		r.Get("/recommendations", recHandler.List)
		r.Post("/recommendations/{id}/remediate", h.Wrap(recHandler.Remediate))

		r.Post("/checkout", h.Wrap(billingHandler.Checkout))
		r.Post("/webhook/stripe", h.Wrap(billingHandler.StripeWebhook))
	})

	// No 405 path: a known route hit with the wrong method is a 404.
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	return r
}
