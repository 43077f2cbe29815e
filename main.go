package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/papers/papers/internal/api"
	"github.com/papers/papers/internal/config"
	"github.com/papers/papers/internal/httpx"
	"github.com/papers/papers/internal/sentryreport"
	"github.com/papers/papers/internal/storage"
	"github.com/papers/papers/internal/templating"
	"github.com/papers/papers/pkg/logger"
	"github.com/papers/papers/pkg/metrics"
)

var startTime = time.Now()

func main() {
	logger.Init(os.Getenv("PAPERS_LOG_LEVEL"))
	logger.Debugf("startup: log_level=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: bucket=%s region=%s max_assets=%d", cfg.S3.Bucket, cfg.S3.Region, cfg.Job.MaxAssetsPerDocument)

	if err := sentryreport.Init(cfg.Sentry.DSN); err != nil {
		logger.Warnf("sentry init failed: %v", err)
	}

	store, err := storage.NewMinIOStorage(&cfg.S3)
	if err != nil {
		logger.Fatalf("failed to initialize S3 storage: %v", err)
	}

	engine := templating.New()

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	deps := &api.Deps{
		Config:  cfg,
		Client:  httpx.NewDefaultClient(),
		Storage: store,
		Engine:  engine,
	}

	r := api.NewRouter(deps)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Infof("papers listening on %s (uptime clock started %s)", addr, startTime.Format(time.RFC3339))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server failed: %v", err)
	}
}
