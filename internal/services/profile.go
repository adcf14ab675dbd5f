package services

import (
	"context"

	"github.com/Dee1911/Aspire.can/internal/data/repos"
	types "github.com/Dee1911/Aspire.can/internal/domain/user"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
	"github.com/Dee1911/Aspire.can/internal/platform/validate"
)

type ProfileService interface {
	GetProfile(ctx context.Context, uid string) (*types.UserProfile, error)
	// SaveProfile merges patch and returns the stored profile.
	SaveProfile(ctx context.Context, uid string, patch types.ProfilePatch) (*types.UserProfile, error)
}

type profileService struct {
	log         *logger.Logger
	profileRepo repos.UserProfileRepo
}

func NewProfileService(log *logger.Logger, profileRepo repos.UserProfileRepo) ProfileService {
	return &profileService{
		log:         log.With("service", "ProfileService"),
		profileRepo: profileRepo,
	}
}

func (ps *profileService) GetProfile(ctx context.Context, uid string) (*types.UserProfile, error) {
	return ps.profileRepo.GetUserProfile(ctx, uid)
}

func (ps *profileService) SaveProfile(ctx context.Context, uid string, patch types.ProfilePatch) (*types.UserProfile, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	if err := ps.profileRepo.SaveUserProfile(ctx, uid, patch); err != nil {
		return nil, err
	}
	return ps.profileRepo.GetUserProfile(ctx, uid)
}
