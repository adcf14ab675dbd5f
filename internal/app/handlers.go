package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Dee1911/Aspire.can/internal/catalog"
	"github.com/Dee1911/Aspire.can/internal/http"
	httpH "github.com/Dee1911/Aspire.can/internal/http/handlers"
	httpMW "github.com/Dee1911/Aspire.can/internal/http/middleware"
	"github.com/Dee1911/Aspire.can/internal/observability"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

type Handlers struct {
	Health         *httpH.HealthHandler
	Profile        *httpH.ProfileHandler
	Story          *httpH.StoryHandler
	Deadline       *httpH.DeadlineHandler
	Application    *httpH.ApplicationHandler
	Catalog        *httpH.CatalogHandler
	Recommendation *httpH.RecommendationHandler
}

func wireHandlers(log *logger.Logger, s Services, cat *catalog.Catalog) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(),
		Profile:        httpH.NewProfileHandler(s.Profile),
		Story:          httpH.NewStoryHandler(s.Story),
		Deadline:       httpH.NewDeadlineHandler(s.Tracker),
		Application:    httpH.NewApplicationHandler(s.Tracker),
		Catalog:        httpH.NewCatalogHandler(cat),
		Recommendation: httpH.NewRecommendationHandler(s.Recommendation),
	}
}

func wireRouter(log *logger.Logger, cfg Config, s Services, h Handlers, m *observability.Metrics) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                   log,
		ServiceName:           cfg.Otel.ServiceName,
		AllowedOrigins:        cfg.CORSAllowedOrigins,
		Metrics:               m,
		AuthMiddleware:        httpMW.NewAuthMiddleware(log, s.Auth),
		HealthHandler:         h.Health,
		ProfileHandler:        h.Profile,
		StoryHandler:          h.Story,
		DeadlineHandler:       h.Deadline,
		ApplicationHandler:    h.Application,
		CatalogHandler:        h.Catalog,
		RecommendationHandler: h.Recommendation,
	})
}
