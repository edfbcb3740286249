package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/infra/app"
	"github.com/arklim/social-platform-community/internal/infra/config"
	"github.com/arklim/social-platform-community/internal/infra/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		panic("init logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("application init failed", zap.Error(err))
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		log.Error("application terminated", zap.Error(err))
		os.Exit(1)
	}
}
