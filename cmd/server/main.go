package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/hormone-insights-server/internal/api"
	"github.com/hormone-insights-server/internal/cache"
	"github.com/hormone-insights-server/internal/config"
	"github.com/hormone-insights-server/internal/corpus"
	"github.com/hormone-insights-server/internal/database"
	"github.com/hormone-insights-server/internal/domain"
	"github.com/hormone-insights-server/internal/feedback"
	"github.com/hormone-insights-server/internal/repository"
	"github.com/hormone-insights-server/internal/service"
)

func main() {
	cfg, err := config.NewManager().Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Logging)
	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Starting hormone insights server")

	studies, err := corpus.Load(cfg.Corpus.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load research corpus")
	}

	quality, err := service.NewQualityScorer(cfg.Engine.CurrentYear, cfg.Engine.QualityCacheSize)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create quality scorer")
	}

	analyzer := service.NewAnalyzerService(logger)
	ranker := service.NewRecommendationService(studies, quality, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analysisCache := newCache(cfg.Cache, logger)
	defer analysisCache.Close()

	var analysisStore domain.AnalysisStore
	if cfg.Database.Enabled {
		if err := database.NewMigrationRunner(cfg.Database, logger).Up(); err != nil {
			logger.WithError(err).Fatal("Failed to run migrations")
		}
		pool, err := database.Connect(ctx, cfg.Database, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to database")
		}
		store := repository.NewPostgresAnalysisStore(pool, logger)
		defer store.Close()
		analysisStore = store
	}

	feedbackStore, err := newFeedbackStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open feedback store")
	}
	defer feedbackStore.Close()

	server := api.NewServer(cfg, analyzer, ranker, analysisCache, analysisStore, feedbackStore, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func newCache(cfg domain.CacheConfig, logger *logrus.Logger) domain.AnalysisCache {
	if !cfg.Enabled {
		return cache.NoopCache{}
	}
	redisCache, err := cache.NewRedisCache(cfg, logger)
	if err != nil {
		logger.WithError(err).Warn("Redis cache unavailable, running without cache")
		return cache.NoopCache{}
	}
	return redisCache
}

func newFeedbackStore(cfg *domain.Config, logger *logrus.Logger) (feedback.Store, error) {
	if cfg.Feedback.Backend == "postgres" {
		logger.Info("Using Postgres feedback store")
		return feedback.NewPostgresStoreFromURL(config.DSN(cfg.Database))
	}
	logger.WithField("path", cfg.Feedback.SQLitePath).Info("Using SQLite feedback store")
	return feedback.NewSQLiteStore(cfg.Feedback.SQLitePath)
}
