package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/siteglow/trafficlens/internal/cache"
	"github.com/siteglow/trafficlens/internal/config"
	"github.com/siteglow/trafficlens/internal/engine"
	"github.com/siteglow/trafficlens/internal/httpx"
	"github.com/siteglow/trafficlens/internal/query"
	"github.com/siteglow/trafficlens/internal/sites"
	"github.com/siteglow/trafficlens/internal/traffic"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	store, err := cache.NewMinioStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
	if err != nil {
		logger.Error("cache store init failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	sitesClient := sites.NewClient(cfg.SitesAPIURL, cfg.SitesAPIKey, cfg.HTTPTimeout)
	svc := traffic.NewService(traffic.Deps{
		Sites:        sitesClient,
		Access:       sitesClient,
		Engine:       engine.NewClient(cfg.QueryAPIURL, cfg.HTTPTimeout),
		Store:        store,
		Builder:      query.Builder{Table: cfg.TrafficTable},
		Thresholds:   cfg.Thresholds,
		MinPageviews: cfg.MinPageviews,
		Log:          logger,
	})

	r := httpx.NewRouter(logger, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
