package repos

import (
	"github.com/Dee1911/Aspire.can/internal/data/repos/tracker"
	"github.com/Dee1911/Aspire.can/internal/data/repos/user"
	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

type UserProfileRepo = user.UserProfileRepo
type StoryBuilderRepo = user.StoryBuilderRepo

type DeadlineRepo = tracker.DeadlineRepo
type ApplicationRepo = tracker.ApplicationRepo
type ApplicationRepoOptions = tracker.ApplicationRepoOptions

func NewUserProfileRepo(store docstore.Store, baseLog *logger.Logger) UserProfileRepo {
	return user.NewUserProfileRepo(store, baseLog)
}
func NewStoryBuilderRepo(store docstore.Store, baseLog *logger.Logger) StoryBuilderRepo {
	return user.NewStoryBuilderRepo(store, baseLog)
}

func NewDeadlineRepo(store docstore.Store, baseLog *logger.Logger) DeadlineRepo {
	return tracker.NewDeadlineRepo(store, baseLog)
}
func NewApplicationRepo(store docstore.Store, baseLog *logger.Logger, opts ApplicationRepoOptions) ApplicationRepo {
	return tracker.NewApplicationRepo(store, baseLog, opts)
}
