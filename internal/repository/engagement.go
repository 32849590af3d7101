package repository

import (
	"context"

	"playreel/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository covers likes and comments on clips.
type EngagementRepository interface {
	// ToggleLike flips the like state for (clipID, userID) atomically and
	// reports the resulting state plus the fresh like count.
	ToggleLike(ctx context.Context, clipID, userID string) (liked bool, count int64, err error)
	CountLikes(ctx context.Context, clipID string) (int64, error)
	CountLikesByClipIDs(ctx context.Context, clipIDs []string) (map[string]int64, error)
	LikedClipIDs(ctx context.Context, userID string, clipIDs []string) ([]string, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByClip(ctx context.Context, clipID string, limit, offset int) ([]*models.Comment, error)
	CountComments(ctx context.Context, clipID string) (int64, error)
	CountCommentsByClipIDs(ctx context.Context, clipIDs []string) (map[string]int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) ToggleLike(ctx context.Context, clipID, userID string) (bool, int64, error) {
	// INSERT ... ON CONFLICT DO NOTHING is atomic under concurrent toggles:
	// exactly one of two racing inserts wins, the loser falls through to
	// the delete branch.
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (clip_id, user_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (clip_id, user_id) DO NOTHING`,
		clipID, userID,
	)
	if res.Error != nil {
		return false, 0, res.Error
	}

	liked := res.RowsAffected > 0
	if !liked {
		if err := r.db.WithContext(ctx).
			Where("clip_id = ? AND user_id = ?", clipID, userID).
			Delete(&models.Like{}).Error; err != nil {
			return false, 0, err
		}
	}

	count, err := r.CountLikes(ctx, clipID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *engagementRepository) CountLikes(ctx context.Context, clipID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("clip_id = ?", clipID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) CountLikesByClipIDs(ctx context.Context, clipIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(clipIDs))
	if len(clipIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ClipID string
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("clip_id, COUNT(*) as n").
		Where("clip_id IN ?", clipIDs).
		Group("clip_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ClipID] = row.N
	}
	return counts, nil
}

func (r *engagementRepository) LikedClipIDs(ctx context.Context, userID string, clipIDs []string) ([]string, error) {
	if len(clipIDs) == 0 {
		return nil, nil
	}
	var liked []string
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND clip_id IN ?", userID, clipIDs).
		Pluck("clip_id", &liked).Error
	return liked, err
}

func (r *engagementRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *engagementRepository) ListCommentsByClip(
	ctx context.Context,
	clipID string,
	limit, offset int,
) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("clip_id = ?", clipID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *engagementRepository) CountComments(ctx context.Context, clipID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("clip_id = ?", clipID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) CountCommentsByClipIDs(ctx context.Context, clipIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(clipIDs))
	if len(clipIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ClipID string
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("clip_id, COUNT(*) as n").
		Where("clip_id IN ?", clipIDs).
		Group("clip_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ClipID] = row.N
	}
	return counts, nil
}
