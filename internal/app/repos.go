package app

import (
	"github.com/Dee1911/Aspire.can/internal/data/repos"
	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

type Repos struct {
	UserProfile  repos.UserProfileRepo
	StoryBuilder repos.StoryBuilderRepo
	Deadline     repos.DeadlineRepo
	Application  repos.ApplicationRepo
}

func wireRepos(store docstore.Store, log *logger.Logger, cfg Config) Repos {
	log.Info("Wiring repos...")
	return Repos{
		UserProfile:  repos.NewUserProfileRepo(store, log),
		StoryBuilder: repos.NewStoryBuilderRepo(store, log),
		Deadline:     repos.NewDeadlineRepo(store, log),
		Application: repos.NewApplicationRepo(store, log, repos.ApplicationRepoOptions{
			SeedDefaultChecklist: cfg.DefaultChecklist,
		}),
	}
}
