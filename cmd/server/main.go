package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ecoscan/backend/config"
	"github.com/ecoscan/backend/internal/app"
	httpDelivery "github.com/ecoscan/backend/internal/delivery/http"
	"github.com/ecoscan/backend/internal/logging"
)

func main() {
	bootLogger := logging.New("info")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLogger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewWithWriter(os.Stdout, cfg.Logging.Level, cfg.Logging.Format == "json")
	logger.Info("starting EcoScan backend", "version", httpDelivery.Version, "environment", cfg.Server.Environment)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
