package repository

import (
	"context"

	"playreel/internal/models"

	"gorm.io/gorm"
)

// SportRepository covers the static sports reference data.
type SportRepository interface {
	List(ctx context.Context) ([]*models.Sport, error)
	BySlug(ctx context.Context, slug string) (*models.Sport, error)
	ByIDs(ctx context.Context, ids []uint) (map[uint]*models.Sport, error)
}

type sportRepository struct {
	db *gorm.DB
}

// NewSportRepository creates a new SportRepository
func NewSportRepository(db *gorm.DB) SportRepository {
	return &sportRepository{db: db}
}

func (r *sportRepository) List(ctx context.Context) ([]*models.Sport, error) {
	var sports []*models.Sport
	err := r.db.WithContext(ctx).Order("name ASC").Find(&sports).Error
	return sports, err
}

func (r *sportRepository) BySlug(ctx context.Context, slug string) (*models.Sport, error) {
	var sport models.Sport
	if err := r.db.WithContext(ctx).First(&sport, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &sport, nil
}

func (r *sportRepository) ByIDs(ctx context.Context, ids []uint) (map[uint]*models.Sport, error) {
	byID := make(map[uint]*models.Sport, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var sports []*models.Sport
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&sports).Error; err != nil {
		return nil, err
	}
	for _, s := range sports {
		byID[s.ID] = s
	}
	return byID, nil
}
