package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"playreel/internal/cache"
	"playreel/internal/models"
	"playreel/internal/repository"
	"playreel/internal/validation"
)

// ProfileService covers the identity glue: first-login profile creation,
// the settings flow, and the sports reference list.
type ProfileService struct {
	profiles repository.ProfileRepository
	sports   repository.SportRepository
}

type SyncProfileInput struct {
	UserID      string
	DisplayName string
	AvatarURL   string
}

type UpdateProfileInput struct {
	UserID      string
	DisplayName *string
	Username    *string
	AvatarURL   *string
	Location    *string
	Bio         *string
}

func NewProfileService(
	profiles repository.ProfileRepository,
	sports repository.SportRepository,
) *ProfileService {
	return &ProfileService{profiles: profiles, sports: sports}
}

// Sync upserts the profile from identity-provider data on login. User
// edited fields (username, bio, location) survive the upsert.
func (s *ProfileService) Sync(ctx context.Context, in SyncProfileInput) (*models.Profile, error) {
	profile := &models.Profile{
		ID:          in.UserID,
		DisplayName: strings.TrimSpace(in.DisplayName),
	}
	if in.AvatarURL != "" {
		profile.AvatarURL = &in.AvatarURL
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, models.NewDatabaseError(err)
	}

	stored, err := s.profiles.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return stored, nil
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("profile", userID)
	}
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return profile, nil
}

// Update applies the settings form. Nil fields are left untouched.
func (s *ProfileService) Update(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return nil, models.NewInvalidBodyError("Invalid profile", map[string]any{
				"displayName": "must not be empty",
			})
		}
		profile.DisplayName = name
	}
	if in.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*in.Username))
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewInvalidBodyError("Invalid profile", map[string]any{
				"username": err.Error(),
			})
		}
		profile.Username = &username
	}
	if in.AvatarURL != nil {
		profile.AvatarURL = in.AvatarURL
	}
	if in.Location != nil {
		profile.Location = strings.TrimSpace(*in.Location)
	}
	if in.Bio != nil {
		profile.Bio = strings.TrimSpace(*in.Bio)
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return profile, nil
}

// Sports returns the reference list, cache-aside with a long TTL since
// the data only changes on reseed.
func (s *ProfileService) Sports(ctx context.Context) ([]*models.Sport, error) {
	var sports []*models.Sport
	err := cache.Aside(ctx, cache.SportsKey(), &sports, cache.SportsTTL, func() error {
		var err error
		sports, err = s.sports.List(ctx)
		return err
	})
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return sports, nil
}
