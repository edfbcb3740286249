package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/core/port"
	"github.com/arklim/social-platform-community/internal/infra/config"
	"github.com/arklim/social-platform-community/internal/infra/database"
	"github.com/arklim/social-platform-community/internal/infra/kafka"
	redisinfra "github.com/arklim/social-platform-community/internal/infra/redis"
	"github.com/arklim/social-platform-community/internal/infra/security"
	"github.com/arklim/social-platform-community/internal/repository/postgres"
	redisrepo "github.com/arklim/social-platform-community/internal/repository/redis"
	"github.com/arklim/social-platform-community/internal/transport/http/handlers"
	"github.com/arklim/social-platform-community/internal/transport/http/routes"
	"github.com/arklim/social-platform-community/internal/usecase"
)

const shutdownTimeout = 15 * time.Second

// Application owns the service's long-lived resources and HTTP server.
type Application struct {
	cfg    *config.AppConfig
	logger *zap.Logger

	pool     *pgxpool.Pool
	redis    *redisinfra.Client
	producer *kafka.Producer
	server   *http.Server
}

// New wires configuration into repositories, services, and the HTTP server.
// Redis and Kafka are optional at startup: without Redis the login limiter
// is disabled, without Kafka events go to the logging stub.
func New(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*Application, error) {
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	app := &Application{cfg: cfg, logger: log, pool: pool}

	var rateLimits port.RateLimitStore
	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, login rate limiting disabled", zap.Error(err))
	} else {
		app.redis = redisClient
		rateLimits = redisrepo.NewLoginAttemptStore(redisClient.Client(), "", cfg.RateLimit.WindowDuration*2)
	}

	var events port.EventPublisher = kafka.NewStubPublisher(log)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("kafka unavailable, falling back to stub publisher", zap.Error(err))
		} else {
			app.producer = producer
			events = kafka.NewEventPublisher(producer, cfg.App, log)
		}
	}

	issuer, err := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("init token issuer: %w", err)
	}

	repos := postgres.NewRepositories(pool)
	authService := usecase.NewAuthService(repos.Users, issuer, log)
	postService := usecase.NewPostService(repos.Posts, events, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	healthOpts := []handlers.HealthOption{
		handlers.WithReadinessCheck("postgres", pool.Ping),
	}
	if app.redis != nil {
		healthOpts = append(healthOpts, handlers.WithReadinessCheck("redis", app.redis.HealthCheck))
	}

	router := routes.New(routes.Dependencies{
		Config:        cfg,
		Logger:        log,
		AuthService:   authService,
		PostService:   postService,
		RateLimits:    rateLimits,
		HealthHandler: handlers.NewHealthHandler(healthOpts...),
		Registry:      registry,
	})

	app.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeResources()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown failed", zap.Error(err))
	}

	a.closeResources()
	return nil
}

func (a *Application) closeResources() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("close kafka producer failed", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("close redis failed", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
