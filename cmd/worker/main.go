package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/khoahotran/credably/adapters/event"
	"github.com/khoahotran/credably/adapters/persistence"
	"github.com/khoahotran/credably/internal/application/service"
	credUC "github.com/khoahotran/credably/internal/application/usecase/credibility"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
	"github.com/khoahotran/credably/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	defer appLogger.Sync()
	appLogger.Info("Starting Credably Worker...")

	shutdownTracing, err := tracing.Init(cfg, appLogger, "credably-worker")
	if err != nil {
		appLogger.Fatal("Cannot initialize tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	var scoreCache service.ScoreCache
	if redisClient, err := persistence.NewRedisClient(cfg, appLogger); err != nil {
		appLogger.Warn("Redis unavailable, cached scores will expire on their own", zap.Error(err))
	} else {
		defer redisClient.Close()
		scoreCache = persistence.NewRedisScoreCache(redisClient, cfg.Cache.ScoreTTL, appLogger)
	}

	// Repositories
	evidence := credUC.Evidence{
		Profiles:       persistence.NewPostgresProfileRepo(dbPool, appLogger),
		Skills:         persistence.NewPostgresSkillRepo(dbPool, appLogger),
		Socials:        persistence.NewPostgresSocialRepo(dbPool, appLogger),
		Certifications: persistence.NewPostgresCertificationRepo(dbPool, appLogger),
	}
	scoreRepo := persistence.NewPostgresScoreRepo(dbPool, appLogger)

	// Worker Use Case
	calculate := credUC.NewCalculateScoreUseCase(evidence, scoreRepo, scoreCache, metrics.NewRecorder(), appLogger)
	processEventUC := credUC.NewProcessEvidenceEventUseCase(calculate, appLogger)

	// Kafka Consumer
	consumer, err := event.NewEvidenceConsumer(cfg, processEventUC.Execute, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka consumer", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		appLogger.Error("Consumer stopped", err)
	}
	appLogger.Info("Worker stopped")
}
