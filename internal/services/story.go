package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dee1911/Aspire.can/internal/catalog"
	"github.com/Dee1911/Aspire.can/internal/data/repos"
	types "github.com/Dee1911/Aspire.can/internal/domain/user"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

const notProvided = "Not provided."

type StoryService interface {
	GetStory(ctx context.Context, uid string) (*types.StoryBuilderData, error)
	SaveStory(ctx context.Context, uid string, patch types.StoryPatch) (*types.StoryBuilderData, error)
	AddExtracurricular(ctx context.Context, uid string, ec types.ExtracurricularStory) (string, error)
	// AddActivityFromCatalog appends a catalog activity to the narrative.
	AddActivityFromCatalog(ctx context.Context, uid, activityName string) (*types.ExtracurricularStory, error)
	// ComposeNarrative renders the narrative as the plain-text profile used
	// for scholarship matching.
	ComposeNarrative(data *types.StoryBuilderData) string
}

type storyService struct {
	log       *logger.Logger
	storyRepo repos.StoryBuilderRepo
	catalog   *catalog.Catalog
}

func NewStoryService(log *logger.Logger, storyRepo repos.StoryBuilderRepo, cat *catalog.Catalog) StoryService {
	return &storyService{
		log:       log.With("service", "StoryService"),
		storyRepo: storyRepo,
		catalog:   cat,
	}
}

func (ss *storyService) GetStory(ctx context.Context, uid string) (*types.StoryBuilderData, error) {
	return ss.storyRepo.GetStoryBuilderData(ctx, uid)
}

func (ss *storyService) SaveStory(ctx context.Context, uid string, patch types.StoryPatch) (*types.StoryBuilderData, error) {
	if err := ss.storyRepo.SaveStoryBuilderData(ctx, uid, patch); err != nil {
		return nil, err
	}
	return ss.storyRepo.GetStoryBuilderData(ctx, uid)
}

func (ss *storyService) AddExtracurricular(ctx context.Context, uid string, ec types.ExtracurricularStory) (string, error) {
	return ss.storyRepo.AddExtracurricular(ctx, uid, ec)
}

func (ss *storyService) AddActivityFromCatalog(ctx context.Context, uid, activityName string) (*types.ExtracurricularStory, error) {
	act, ok := ss.catalog.Activity(activityName)
	if !ok {
		return nil, fmt.Errorf("activity %q: %w", activityName, ErrNotFound)
	}
	ec := types.ExtracurricularStory{
		Name:   act.Name,
		Story:  act.Description,
		Skills: act.SkillsGained,
	}
	id, err := ss.storyRepo.AddExtracurricular(ctx, uid, ec)
	if err != nil {
		return nil, err
	}
	ec.ID = id
	ss.log.Info("Added catalog activity to story", "user_id", uid, "activity", act.Name)
	return &ec, nil
}

func (ss *storyService) ComposeNarrative(data *types.StoryBuilderData) string {
	return ComposeNarrative(data)
}

// ComposeNarrative joins the narrative sections with blank lines. Blank
// sections read "Not provided.".
func ComposeNarrative(data *types.StoryBuilderData) string {
	if data == nil {
		data = &types.StoryBuilderData{}
	}
	ecs := make([]string, 0, len(data.Ecs))
	for _, ec := range data.Ecs {
		ecs = append(ecs, fmt.Sprintf("- %s (%s): %s - %s", ec.Name, ec.Role, ec.Impact, ec.Story))
	}
	sections := []string{
		"Personal Story: " + orNotProvided(data.PersonalStory),
		"Extracurriculars: " + orNotProvided(strings.Join(ecs, "\n")),
		"Achievements: " + orNotProvided(data.Achievements),
		"Grades: " + orNotProvided(data.Grades),
		"Struggles & Growth: " + orNotProvided(data.Struggles),
		"Skills: " + orNotProvided(data.Skills),
	}
	return strings.Join(sections, "\n\n")
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}
