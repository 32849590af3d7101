package repository

import (
	"context"

	"playreel/internal/models"

	"gorm.io/gorm"
)

// LeaderboardRepository reads the precomputed leaderboard_entries view.
type LeaderboardRepository interface {
	Top(ctx context.Context, sportID *uint, limit int) ([]*models.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a new LeaderboardRepository
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) Top(ctx context.Context, sportID *uint, limit int) ([]*models.LeaderboardEntry, error) {
	q := r.db.WithContext(ctx).Model(&models.LeaderboardEntry{})
	if sportID != nil {
		q = q.Where("sport_id = ?", *sportID)
	}

	var entries []*models.LeaderboardEntry
	err := q.Order("score DESC, clip_count DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
