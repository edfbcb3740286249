package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/infra/config"
	"github.com/arklim/social-platform-community/internal/infra/database"
	"github.com/arklim/social-platform-community/internal/infra/logger"
	"github.com/arklim/social-platform-community/internal/infra/security"
	"github.com/arklim/social-platform-community/internal/repository/postgres"
	"github.com/arklim/social-platform-community/internal/verify"
)

// Exit codes: 0 when the visibility rule held everywhere, 2 when a private
// post leaked, 1 for configuration problems and runs that proved nothing.
func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		return 1
	}

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		os.Stderr.WriteString("init logger: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	issuer, err := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	if err != nil {
		log.Error("token issuer misconfigured", zap.Error(err))
		return 1
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		log.Error("postgres unavailable", zap.Error(err))
		return 1
	}
	defer pool.Close()

	repos := postgres.NewRepositories(pool)
	api := verify.NewClient(cfg.Verify.BaseURL, cfg.Verify.HTTPTimeout)

	verifier := verify.NewVerifier(repos.Posts, repos.Users, issuer, api, cfg.Verify.PageSize, log)

	report := verifier.Run(ctx)

	for _, assertion := range report.Assertions {
		log.Info("assertion",
			zap.String("name", assertion.Name),
			zap.String("expected", assertion.Expected),
			zap.String("observed", assertion.Observed),
			zap.Bool("passed", assertion.Passed),
		)
	}
	log.Info("verification finished",
		zap.String("verdict", string(report.Verdict)),
		zap.String("detail", report.Detail),
		zap.String("summary", report.Summary()),
	)

	return report.ExitCode()
}
