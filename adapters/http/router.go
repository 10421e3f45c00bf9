package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/credably/pkg/auth"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

type Handlers struct {
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Skill         *SkillHandler
	Certification *CertificationHandler
	Score         *ScoreHandler
	Integration   *IntegrationHandler
	Analysis      *AnalysisHandler
}

// HealthCheck reports readiness; nil means healthy.
type HealthCheck func(c *gin.Context) error

func NewRouter(h Handlers, jwtSvc *auth.JWTService, rec *metrics.Recorder, health HealthCheck, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), rec.GinMiddleware(), ErrorMiddleware(log))

	if rec != nil {
		router.GET("/metrics", rec.Handler())
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			if health != nil {
				if err := health(c); err != nil {
					c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "details": err.Error()})
					return
				}
			}
			c.JSON(http.StatusOK, gin.H{"status": "UP"})
		})
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)

		private := api.Group("")
		private.Use(AuthMiddleware(jwtSvc, log))
		{
			private.GET("/auth/me", h.Auth.Me)

			private.GET("/profile", h.Profile.GetProfile)
			private.PUT("/profile", h.Profile.UpdateProfile)

			skills := private.Group("/skills")
			{
				skills.GET("", h.Skill.ListSkills)
				skills.POST("", h.Skill.AddSkill)
				skills.PATCH("/:id", h.Skill.UpdateSkill)
				skills.DELETE("/:id", h.Skill.DeleteSkill)
			}

			certs := private.Group("/certifications")
			{
				certs.GET("", h.Certification.ListCertifications)
				certs.POST("", h.Certification.AddCertification)
				certs.DELETE("/:id", h.Certification.DeleteCertification)
			}

			private.GET("/credibility-score", h.Score.GetScore)
			private.POST("/credibility-score", h.Score.RecalculateScore)
			private.GET("/dashboard", h.Score.Dashboard)

			integrations := private.Group("/integrations")
			{
				integrations.GET("", h.Integration.ListIntegrations)
				integrations.POST("/sync-all", h.Integration.SyncAll)
				integrations.POST("/:platform/connect", h.Integration.Connect)
				integrations.POST("/:platform/sync", h.Integration.Sync)
				integrations.DELETE("/:platform", h.Integration.Disconnect)
			}

			private.POST("/analysis/resume", h.Analysis.AnalyzeResume)

			recs := private.Group("/recommendations")
			{
				recs.GET("", h.Analysis.ListRecommendations)
				recs.POST("/generate", h.Analysis.GenerateRecommendations)
				recs.PATCH("/:id", h.Analysis.UpdateRecommendation)
			}

			paths := private.Group("/learning-paths")
			{
				paths.GET("", h.Analysis.ListLearningPaths)
				paths.POST("", h.Analysis.GenerateLearningPath)
				paths.GET("/:id", h.Analysis.GetLearningPath)
				paths.DELETE("/:id", h.Analysis.DeleteLearningPath)
			}
		}
	}

	return router
}
