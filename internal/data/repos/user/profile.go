package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dee1911/Aspire.can/internal/data/docpath"
	"github.com/Dee1911/Aspire.can/internal/docstore"
	types "github.com/Dee1911/Aspire.can/internal/domain"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

type UserProfileRepo interface {
	// GetUserProfile never reports absence: a missing profile is created as
	// {onboardingComplete: false} and returned.
	GetUserProfile(ctx context.Context, uid string) (*types.UserProfile, error)
	// SaveUserProfile merges the set fields into the profile, creating it if
	// needed.
	SaveUserProfile(ctx context.Context, uid string, patch types.ProfilePatch) error
}

type userProfileRepo struct {
	store docstore.Store
	log   *logger.Logger
}

func NewUserProfileRepo(store docstore.Store, baseLog *logger.Logger) UserProfileRepo {
	return &userProfileRepo{store: store, log: baseLog.With("repo", "UserProfileRepo")}
}

func (r *userProfileRepo) GetUserProfile(ctx context.Context, uid string) (*types.UserProfile, error) {
	if err := docpath.Segment("userId", uid); err != nil {
		return nil, err
	}
	p := docpath.Profile(uid)
	doc, err := r.store.Get(ctx, p)
	if errors.Is(err, docstore.ErrNotFound) {
		r.log.Info("Creating default profile", "user_id", uid)
		if err := r.store.Set(ctx, p, map[string]any{"onboardingComplete": false}, docstore.Merge()); err != nil {
			return nil, fmt.Errorf("create default profile: %w", err)
		}
		doc, err = r.store.Get(ctx, p)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	var out types.UserProfile
	if err := docstore.Decode(doc.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userProfileRepo) SaveUserProfile(ctx context.Context, uid string, patch types.ProfilePatch) error {
	if err := docpath.Segment("userId", uid); err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}
	fields, err := docstore.Encode(patch)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, docpath.Profile(uid), fields, docstore.Merge()); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
