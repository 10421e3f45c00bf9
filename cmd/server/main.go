package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/adapters/event"
	httpAdapter "github.com/khoahotran/credably/adapters/http"
	"github.com/khoahotran/credably/adapters/llm"
	"github.com/khoahotran/credably/adapters/persistence"
	"github.com/khoahotran/credably/adapters/provider"
	"github.com/khoahotran/credably/internal/application/service"
	analysisUC "github.com/khoahotran/credably/internal/application/usecase/analysis"
	authUC "github.com/khoahotran/credably/internal/application/usecase/auth"
	certUC "github.com/khoahotran/credably/internal/application/usecase/certification"
	credUC "github.com/khoahotran/credably/internal/application/usecase/credibility"
	dashboardUC "github.com/khoahotran/credably/internal/application/usecase/dashboard"
	integrationUC "github.com/khoahotran/credably/internal/application/usecase/integration"
	profileUC "github.com/khoahotran/credably/internal/application/usecase/profile"
	skillUC "github.com/khoahotran/credably/internal/application/usecase/skill"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/pkg/auth"
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
	appLogger.Info("Start Credably API Server...")

	shutdownTracing, err := tracing.Init(cfg, appLogger, "credably-api")
	if err != nil {
		appLogger.Fatal("Cannot initialize tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Infrastructure
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	var scoreCache service.ScoreCache
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Redis unavailable, score cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		scoreCache = persistence.NewRedisScoreCache(redisClient, cfg.Cache.ScoreTTL, appLogger)
	}

	recorder := metrics.NewRecorder()

	var publisher service.EventPublisher
	kafkaClient, err := event.NewKafkaProducerClient(cfg, recorder, appLogger)
	if err != nil {
		appLogger.Warn("Kafka unavailable, evidence events disabled", zap.Error(err))
	} else {
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	llmService, err := llm.NewOpenAIAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot initialize OpenAI adapter", err)
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	certRepo := persistence.NewPostgresCertificationRepo(dbPool, appLogger)
	socialRepo := persistence.NewPostgresSocialRepo(dbPool, appLogger)
	syncRepo := persistence.NewPostgresSyncRepo(dbPool, appLogger)
	scoreRepo := persistence.NewPostgresScoreRepo(dbPool, appLogger)
	recRepo := persistence.NewPostgresRecommendationRepo(dbPool, appLogger)
	pathRepo := persistence.NewPostgresLearningPathRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	providers := provider.NewRegistry(cfg, appLogger)

	// Use Cases
	evidence := credUC.Evidence{Profiles: profileRepo, Skills: skillRepo, Socials: socialRepo, Certifications: certRepo}
	calculateScoreUseCase := credUC.NewCalculateScoreUseCase(evidence, scoreRepo, scoreCache, recorder, appLogger)
	getScoreUseCase := credUC.NewGetScoreUseCase(scoreRepo, scoreCache, calculateScoreUseCase, appLogger)

	handlers := httpAdapter.Handlers{
		Auth: httpAdapter.NewAuthHandler(
			authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewCurrentUserUseCase(userRepo),
			cfg.App.Env == "production", appLogger),
		Profile: httpAdapter.NewProfileHandler(profileUC.NewProfileUseCase(profileRepo, publisher, appLogger), appLogger),
		Skill: httpAdapter.NewSkillHandler(
			skillUC.NewAddSkillUseCase(skillRepo, publisher, appLogger),
			skillUC.NewListSkillsUseCase(skillRepo),
			skillUC.NewUpdateSkillUseCase(skillRepo, publisher, appLogger),
			skillUC.NewDeleteSkillUseCase(skillRepo, publisher, appLogger),
		),
		Certification: httpAdapter.NewCertificationHandler(certUC.NewCertificationUseCase(certRepo, publisher, appLogger)),
		Score: httpAdapter.NewScoreHandler(getScoreUseCase, calculateScoreUseCase,
			dashboardUC.NewDashboardUseCase(getScoreUseCase, skillRepo, syncRepo, recRepo, pathRepo)),
		Integration: httpAdapter.NewIntegrationHandler(integrationUC.NewIntegrationUseCase(
			socialRepo, syncRepo, skillRepo, providers, publisher, recorder, appLogger)),
		Analysis: httpAdapter.NewAnalysisHandler(
			analysisUC.NewAnalyzeResumeUseCase(llmService, skillRepo, publisher, recorder, appLogger),
			analysisUC.NewRecommendationUseCase(llmService, recRepo, profileRepo, skillRepo, getScoreUseCase, recorder, appLogger),
			analysisUC.NewLearningPathUseCase(llmService, pathRepo, skillRepo, recorder, appLogger),
		),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(handlers, jwtSvc, recorder, func(c *gin.Context) error {
		return dbPool.Ping(c.Request.Context())
	}, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
