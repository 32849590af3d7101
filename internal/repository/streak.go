package repository

import (
	"context"
	"errors"

	"playreel/internal/models"

	"gorm.io/gorm"
)

// StreakRepository persists per-user activity streaks.
type StreakRepository interface {
	// Get returns the streak row, or a zero-valued streak when the
	// user has no activity recorded yet.
	Get(ctx context.Context, userID string) (*models.Streak, error)
	Save(ctx context.Context, streak *models.Streak) error
}

type streakRepository struct {
	db *gorm.DB
}

// NewStreakRepository creates a new StreakRepository
func NewStreakRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) Get(ctx context.Context, userID string) (*models.Streak, error) {
	var streak models.Streak
	err := r.db.WithContext(ctx).First(&streak, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Streak{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func (r *streakRepository) Save(ctx context.Context, streak *models.Streak) error {
	return r.db.WithContext(ctx).Save(streak).Error
}
