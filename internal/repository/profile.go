package repository

import (
	"context"

	"playreel/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines interface for profile operations
type ProfileRepository interface {
	// Upsert creates the profile if absent; on conflict it refreshes
	// display name and avatar from the identity provider but leaves
	// user-edited fields alone.
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	ByIDs(ctx context.Context, ids []string) (map[string]*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "avatar_url", "updated_at"}),
		}).
		Create(profile).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ByIDs(ctx context.Context, ids []string) (map[string]*models.Profile, error) {
	byID := make(map[string]*models.Profile, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var profiles []*models.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
