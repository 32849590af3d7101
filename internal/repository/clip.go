package repository

import (
	"context"

	"playreel/internal/models"

	"gorm.io/gorm"
)

// ClipFilter narrows a clip listing. Zero-valued fields are ignored.
type ClipFilter struct {
	UserID  string
	SportID *uint
	Limit   int
	Offset  int
	// ViewerID widens visibility: the viewer always sees their own
	// non-public clips. Empty means anonymous (public only).
	ViewerID string
}

// ClipRepository defines the interface for clip data operations
type ClipRepository interface {
	Create(ctx context.Context, clip *models.Clip) error
	GetByID(ctx context.Context, id string) (*models.Clip, error)
	ExistsByStoragePath(ctx context.Context, storagePath string) (bool, error)
	List(ctx context.Context, f ClipFilter) ([]*models.Clip, error)
}

type clipRepository struct {
	db *gorm.DB
}

// NewClipRepository creates a new clip repository
func NewClipRepository(db *gorm.DB) ClipRepository {
	return &clipRepository{db: db}
}

func (r *clipRepository) Create(ctx context.Context, clip *models.Clip) error {
	return r.db.WithContext(ctx).Create(clip).Error
}

func (r *clipRepository) GetByID(ctx context.Context, id string) (*models.Clip, error) {
	var clip models.Clip
	if err := r.db.WithContext(ctx).First(&clip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &clip, nil
}

func (r *clipRepository) ExistsByStoragePath(ctx context.Context, storagePath string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Clip{}).
		Where("storage_path = ?", storagePath).
		Count(&count).Error
	return count > 0, err
}

func (r *clipRepository) List(ctx context.Context, f ClipFilter) ([]*models.Clip, error) {
	q := r.db.WithContext(ctx).Model(&models.Clip{})

	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.SportID != nil {
		q = q.Where("sport_id = ?", *f.SportID)
	}
	if f.ViewerID != "" {
		q = q.Where("visibility = ? OR user_id = ?", models.VisibilityPublic, f.ViewerID)
	} else {
		q = q.Where("visibility = ?", models.VisibilityPublic)
	}

	var clips []*models.Clip
	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&clips).Error
	return clips, err
}
