// Package main is the sneakd HTTP daemon serving generated levels.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/sneakmap/internal/api"
	"github.com/samdwyer/sneakmap/internal/config"
	"github.com/samdwyer/sneakmap/internal/gamedata"
	"github.com/samdwyer/sneakmap/internal/generator"
	"github.com/samdwyer/sneakmap/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelemetryEnabled() {
		telemetry.ConfigureHoneycomb(cfg.HoneycombAPIKey, cfg.HoneycombDataset)
		shutdown, err := telemetry.Setup(ctx, "daemon")
		if err != nil {
			logger.WithError(err).Warn("Telemetry setup failed, serving without traces")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.WithError(err).Error("Shutting down telemetry")
				}
			}()
		}
	}

	levels, err := gamedata.LoadLevelRegistry()
	if err != nil {
		logger.WithError(err).Fatal("Loading level presets")
	}

	// Each request gets its own generator and random source.
	factory := func(seed int64) *generator.Generator {
		return generator.New(generator.Config{
			Rand:         generator.SeededRand(seed),
			Logger:       logger,
			SeekerBudget: cfg.SeekerBudget,
			MaxAttempts:  cfg.MaxAttempts,
		})
	}

	router := api.NewRouter(api.Config{
		Addr:        cfg.HTTPAddr,
		BaseURL:     "/api",
		Controllers: []api.Controller{api.NewMapController(levels, factory, cfg.RequestTimeout)},
		Logger:      logger,
	})

	if err := router.Run(ctx); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
	logger.Info("Server shut down")
}
