package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"playreel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedStreakService(repo *streakRepoStub, now time.Time) *StreakService {
	svc := NewStreakService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func datePtr(t time.Time) *time.Time {
	d := truncateToUTCDay(t)
	return &d
}

func TestStreakService_Increment(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("first activity starts at one", func(t *testing.T) {
		t.Parallel()
		repo := &streakRepoStub{}
		svc := fixedStreakService(repo, now)

		out, err := svc.Increment(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, 1, out.CurrentStreak)
		assert.Equal(t, 1, out.LongestStreak)
		require.NotNil(t, out.LastActivityDate)
		assert.Equal(t, truncateToUTCDay(now), *out.LastActivityDate)
		assert.Len(t, repo.saved, 1)
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		t.Parallel()
		repo := &streakRepoStub{
			getFn: func(_ context.Context, userID string) (*models.Streak, error) {
				return &models.Streak{
					UserID:           userID,
					CurrentStreak:    4,
					LongestStreak:    9,
					LastActivityDate: datePtr(now),
				}, nil
			},
		}
		svc := fixedStreakService(repo, now)

		out, err := svc.Increment(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, 4, out.CurrentStreak)
		assert.Empty(t, repo.saved)
	})

	t.Run("consecutive day extends", func(t *testing.T) {
		t.Parallel()
		repo := &streakRepoStub{
			getFn: func(_ context.Context, userID string) (*models.Streak, error) {
				return &models.Streak{
					UserID:           userID,
					CurrentStreak:    4,
					LongestStreak:    9,
					LastActivityDate: datePtr(now.AddDate(0, 0, -1)),
				}, nil
			},
		}
		svc := fixedStreakService(repo, now)

		out, err := svc.Increment(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, 5, out.CurrentStreak)
		assert.Equal(t, 9, out.LongestStreak)
	})

	t.Run("gap resets to one", func(t *testing.T) {
		t.Parallel()
		repo := &streakRepoStub{
			getFn: func(_ context.Context, userID string) (*models.Streak, error) {
				return &models.Streak{
					UserID:           userID,
					CurrentStreak:    4,
					LongestStreak:    9,
					LastActivityDate: datePtr(now.AddDate(0, 0, -3)),
				}, nil
			},
		}
		svc := fixedStreakService(repo, now)

		out, err := svc.Increment(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, 1, out.CurrentStreak)
		assert.Equal(t, 9, out.LongestStreak)
	})

	t.Run("longest follows a new record", func(t *testing.T) {
		t.Parallel()
		repo := &streakRepoStub{
			getFn: func(_ context.Context, userID string) (*models.Streak, error) {
				return &models.Streak{
					UserID:           userID,
					CurrentStreak:    9,
					LongestStreak:    9,
					LastActivityDate: datePtr(now.AddDate(0, 0, -1)),
				}, nil
			},
		}
		svc := fixedStreakService(repo, now)

		out, err := svc.Increment(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, 10, out.CurrentStreak)
		assert.Equal(t, 10, out.LongestStreak)
	})
}

func TestStreakWorker_ProcessesEnqueuedUsers(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	saved := map[string]int{}
	repo := &streakRepoStub{
		saveFn: func(_ context.Context, s *models.Streak) error {
			mu.Lock()
			saved[s.UserID]++
			mu.Unlock()
			return nil
		},
	}
	worker := NewStreakWorker(NewStreakService(repo))
	worker.Start()

	worker.Enqueue(ownerA)
	worker.Enqueue(ownerB)
	worker.Shutdown()

	assert.Equal(t, 1, saved[ownerA])
	assert.Equal(t, 1, saved[ownerB])
}

func TestStreakWorker_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	attempts := 0
	repo := &streakRepoStub{
		saveFn: func(_ context.Context, _ *models.Streak) error {
			mu.Lock()
			defer mu.Unlock()
			attempts++
			if attempts < 2 {
				return assert.AnError
			}
			return nil
		},
	}
	worker := NewStreakWorker(NewStreakService(repo))
	worker.sleep = func(time.Duration) {}
	worker.Start()

	worker.Enqueue(ownerA)
	worker.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, attempts)
}
