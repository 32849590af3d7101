package service

import (
	"context"
	"time"

	"playreel/internal/models"
	"playreel/internal/repository"
)

// StreakService maintains consecutive-day activity streaks. Day
// boundaries are UTC calendar days.
type StreakService struct {
	streaks repository.StreakRepository
	now     func() time.Time
}

func NewStreakService(streaks repository.StreakRepository) *StreakService {
	return &StreakService{streaks: streaks, now: time.Now}
}

// Get returns the caller's streak, zero-valued when none exists.
func (s *StreakService) Get(ctx context.Context, userID string) (*models.Streak, error) {
	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return streak, nil
}

// Increment records activity for today: a repeat on the same day is a
// no-op, activity on the day after the last one extends the streak, and
// any longer gap resets it to 1. Longest is monotone.
func (s *StreakService) Increment(ctx context.Context, userID string) (*models.Streak, error) {
	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}

	today := truncateToUTCDay(s.now())
	switch {
	case streak.LastActivityDate == nil:
		streak.CurrentStreak = 1
	case streak.LastActivityDate.Equal(today):
		return streak, nil
	case streak.LastActivityDate.Equal(today.AddDate(0, 0, -1)):
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}

	streak.LastActivityDate = &today
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	if err := s.streaks.Save(ctx, streak); err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return streak, nil
}

func truncateToUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
