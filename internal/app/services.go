package app

import (
	"github.com/Dee1911/Aspire.can/internal/catalog"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
	"github.com/Dee1911/Aspire.can/internal/services"
)

type Services struct {
	Auth           services.AuthService
	Profile        services.ProfileService
	Story          services.StoryService
	Tracker        services.TrackerService
	Recommendation services.RecommendationService
}

func wireServices(log *logger.Logger, cfg Config, r Repos, cat *catalog.Catalog, gen services.Generator) (Services, error) {
	log.Info("Wiring services...")
	auth, err := services.NewAuthService(log, cfg.JWTSecretKey, cfg.JWTIssuer, cfg.AccessTokenTTL)
	if err != nil {
		return Services{}, err
	}
	story := services.NewStoryService(log, r.StoryBuilder, cat)
	return Services{
		Auth:           auth,
		Profile:        services.NewProfileService(log, r.UserProfile),
		Story:          story,
		Tracker:        services.NewTrackerService(log, r.Deadline, r.Application),
		Recommendation: services.NewRecommendationService(log, gen, cat, story),
	}, nil
}
