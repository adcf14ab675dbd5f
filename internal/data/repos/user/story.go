package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Dee1911/Aspire.can/internal/data/docpath"
	"github.com/Dee1911/Aspire.can/internal/docstore"
	types "github.com/Dee1911/Aspire.can/internal/domain"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
	"github.com/Dee1911/Aspire.can/internal/platform/validate"
)

type StoryBuilderRepo interface {
	// GetStoryBuilderData returns empty defaults when the narrative has never
	// been saved. Ecs is always a non-nil slice.
	GetStoryBuilderData(ctx context.Context, uid string) (*types.StoryBuilderData, error)
	SaveStoryBuilderData(ctx context.Context, uid string, patch types.StoryPatch) error
	// AddExtracurricular appends one story, assigning an id when empty. The
	// ecs list is read and rewritten whole; adds are serialized within this
	// process only, so a second instance writing the same user can still
	// drop an entry (single active session assumed).
	AddExtracurricular(ctx context.Context, uid string, ec types.ExtracurricularStory) (string, error)
}

type storyBuilderRepo struct {
	store docstore.Store
	log   *logger.Logger
	ecsMu sync.Mutex
}

func NewStoryBuilderRepo(store docstore.Store, baseLog *logger.Logger) StoryBuilderRepo {
	return &storyBuilderRepo{store: store, log: baseLog.With("repo", "StoryBuilderRepo")}
}

func (r *storyBuilderRepo) GetStoryBuilderData(ctx context.Context, uid string) (*types.StoryBuilderData, error) {
	if err := docpath.Segment("userId", uid); err != nil {
		return nil, err
	}
	doc, err := r.store.Get(ctx, docpath.Story(uid))
	if errors.Is(err, docstore.ErrNotFound) {
		return &types.StoryBuilderData{Ecs: []types.ExtracurricularStory{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get story builder data: %w", err)
	}
	return r.decode(uid, doc.Data)
}

// decode tolerates hand-edited documents: text fields of the wrong type read
// as empty and a non-list ecs reads as an empty list.
func (r *storyBuilderRepo) decode(uid string, data map[string]any) (*types.StoryBuilderData, error) {
	out := &types.StoryBuilderData{
		PersonalStory: stringField(data, "personalStory"),
		Achievements:  stringField(data, "achievements"),
		Grades:        stringField(data, "grades"),
		Struggles:     stringField(data, "struggles"),
		Skills:        stringField(data, "skills"),
		Ecs:           []types.ExtracurricularStory{},
	}
	raw, ok := data["ecs"].([]any)
	if !ok {
		if data["ecs"] != nil {
			r.log.Warn("Coercing malformed ecs to empty list", "user_id", uid)
		}
		return out, nil
	}
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			r.log.Warn("Skipping malformed extracurricular", "user_id", uid, "index", i)
			continue
		}
		var ec types.ExtracurricularStory
		if err := docstore.Decode(m, &ec); err != nil {
			r.log.Warn("Skipping undecodable extracurricular", "user_id", uid, "index", i, "error", err)
			continue
		}
		out.Ecs = append(out.Ecs, ec)
	}
	return out, nil
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func (r *storyBuilderRepo) SaveStoryBuilderData(ctx context.Context, uid string, patch types.StoryPatch) error {
	if err := docpath.Segment("userId", uid); err != nil {
		return err
	}
	if err := validate.Struct(patch); err != nil {
		return err
	}
	fields, err := docstore.Encode(patch)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	if err := r.store.Set(ctx, docpath.Story(uid), fields, docstore.Merge()); err != nil {
		return fmt.Errorf("save story builder data: %w", err)
	}
	return nil
}

func (r *storyBuilderRepo) AddExtracurricular(ctx context.Context, uid string, ec types.ExtracurricularStory) (string, error) {
	r.ecsMu.Lock()
	defer r.ecsMu.Unlock()

	current, err := r.GetStoryBuilderData(ctx, uid)
	if err != nil {
		return "", err
	}
	if ec.ID == "" {
		ec.ID = docstore.NewID()
	}
	for _, existing := range current.Ecs {
		if existing.ID == ec.ID {
			return "", fmt.Errorf("%w: extracurricular %s", docstore.ErrConflict, ec.ID)
		}
	}
	ecs := append(current.Ecs, ec)
	if err := r.SaveStoryBuilderData(ctx, uid, types.StoryPatch{Ecs: &ecs}); err != nil {
		return "", err
	}
	return ec.ID, nil
}
