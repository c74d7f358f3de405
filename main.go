package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"benefits-server/config"
	"benefits-server/di"
	"benefits-server/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.InitializeLogger(cfg.Env, cfg.LogLevel)
	log := logger.GetLogger()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to build container", zap.Error(err))
	}

	log.Info("Refreshing benefits")
	if n, err := container.BenefitsRefresherService.RefreshBenefitsData(ctx); err != nil {
		log.Error("Initial refresh failed", zap.Error(err))
	} else {
		log.Info("Initial refresh done", zap.Int("benefits", n))
	}

	interval := time.Duration(cfg.CatalogRefreshMinutes) * time.Minute
	if interval > 0 {
		log.Info("Starting periodic job", zap.Duration("interval", interval))
		container.BenefitsRefresherService.StartPeriodicJob(ctx, interval)
	}

	if err := container.BenefitsHttpServer.Start(ctx); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
}
