package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/Dee1911/Aspire.can/internal/http/handlers"
	httpMW "github.com/Dee1911/Aspire.can/internal/http/middleware"
	"github.com/Dee1911/Aspire.can/internal/observability"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler         *httpH.HealthHandler
	ProfileHandler        *httpH.ProfileHandler
	StoryHandler          *httpH.StoryHandler
	DeadlineHandler       *httpH.DeadlineHandler
	ApplicationHandler    *httpH.ApplicationHandler
	CatalogHandler        *httpH.CatalogHandler
	RecommendationHandler *httpH.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "aspire"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	protected := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Profile
		if cfg.ProfileHandler != nil {
			protected.GET("/profile", cfg.ProfileHandler.GetProfile)
			protected.PATCH("/profile", cfg.ProfileHandler.SaveProfile)
		}

		// Story builder
		if cfg.StoryHandler != nil {
			protected.GET("/story", cfg.StoryHandler.GetStory)
			protected.PATCH("/story", cfg.StoryHandler.SaveStory)
			protected.POST("/story/ecs", cfg.StoryHandler.AddExtracurricular)
			protected.POST("/story/ecs/from-catalog", cfg.StoryHandler.AddActivityFromCatalog)
		}

		// Deadlines
		if cfg.DeadlineHandler != nil {
			protected.GET("/deadlines", cfg.DeadlineHandler.ListDeadlines)
			protected.POST("/deadlines", cfg.DeadlineHandler.AddDeadline)
			protected.DELETE("/deadlines", cfg.DeadlineHandler.DeleteDeadlinesBySource)
			protected.DELETE("/deadlines/:id", cfg.DeadlineHandler.DeleteDeadline)
		}

		// Applications
		if cfg.ApplicationHandler != nil {
			protected.GET("/applications", cfg.ApplicationHandler.ListApplications)
			protected.POST("/applications", cfg.ApplicationHandler.AddApplication)
			protected.GET("/applications/:id", cfg.ApplicationHandler.GetApplication)
			protected.PATCH("/applications/:id", cfg.ApplicationHandler.UpdateApplication)
			protected.DELETE("/applications/:id", cfg.ApplicationHandler.DeleteApplication)
			protected.POST("/applications/:id/tasks", cfg.ApplicationHandler.AddTask)
			protected.PATCH("/applications/:id/tasks/:taskId", cfg.ApplicationHandler.UpdateTask)
			protected.DELETE("/applications/:id/tasks/:taskId", cfg.ApplicationHandler.DeleteTask)
			protected.GET("/dashboard/upcoming", cfg.ApplicationHandler.Upcoming)
		}

		// Catalog
		if cfg.CatalogHandler != nil {
			protected.GET("/catalog/scholarships", cfg.CatalogHandler.Scholarships)
			protected.GET("/catalog/programs", cfg.CatalogHandler.Programs)
			protected.GET("/catalog/activities", cfg.CatalogHandler.Activities)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			protected.POST("/recommendations/programs", cfg.RecommendationHandler.FindPrograms)
			protected.POST("/recommendations/admission-chance", cfg.RecommendationHandler.AdmissionChance)
			protected.POST("/recommendations/essay-feedback", cfg.RecommendationHandler.EssayFeedback)
			protected.POST("/recommendations/timeline", cfg.RecommendationHandler.Timeline)
			protected.POST("/recommendations/scholarships", cfg.RecommendationHandler.Scholarships)
			protected.POST("/recommendations/ec-impact", cfg.RecommendationHandler.ECImpact)
			protected.POST("/recommendations/features", cfg.RecommendationHandler.Features)
		}
	}

	return r
}
