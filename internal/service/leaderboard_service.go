package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"playreel/internal/cache"
	"playreel/internal/models"
	"playreel/internal/repository"
)

const leaderboardSize = 20

// LeaderboardService reads the precomputed leaderboard view. All ranking
// happens database-side; this is a cached passthrough plus enrichment.
type LeaderboardService struct {
	leaderboard repository.LeaderboardRepository
	profiles    repository.ProfileRepository
	sports      repository.SportRepository
}

func NewLeaderboardService(
	leaderboard repository.LeaderboardRepository,
	profiles repository.ProfileRepository,
	sports repository.SportRepository,
) *LeaderboardService {
	return &LeaderboardService{leaderboard: leaderboard, profiles: profiles, sports: sports}
}

// Top returns the leaderboard, optionally scoped to a sport. An unknown
// slug yields an empty board rather than an error.
func (s *LeaderboardService) Top(ctx context.Context, sportSlug string) ([]*models.EnrichedLeaderboardEntry, error) {
	var sportID *uint
	if sportSlug != "" {
		sport, err := s.sports.BySlug(ctx, sportSlug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []*models.EnrichedLeaderboardEntry{}, nil
		}
		if err != nil {
			return nil, models.NewDatabaseError(err)
		}
		sportID = &sport.ID
	}

	var board []*models.EnrichedLeaderboardEntry
	key := cache.LeaderboardKey(sportSlug, leaderboardSize)
	err := cache.Aside(ctx, key, &board, cache.LeaderboardTTL, func() error {
		var err error
		board, err = s.fetch(ctx, sportID)
		return err
	})
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return board, nil
}

func (s *LeaderboardService) fetch(ctx context.Context, sportID *uint) ([]*models.EnrichedLeaderboardEntry, error) {
	entries, err := s.leaderboard.Top(ctx, sportID, leaderboardSize)
	if err != nil {
		return nil, err
	}

	board := make([]*models.EnrichedLeaderboardEntry, 0, len(entries))
	if len(entries) == 0 {
		return board, nil
	}

	userIDs := make([]string, 0, len(entries))
	sportIDs := make([]uint, 0, len(entries))
	seenUsers := map[string]struct{}{}
	seenSports := map[uint]struct{}{}
	for _, e := range entries {
		if _, ok := seenUsers[e.UserID]; !ok {
			seenUsers[e.UserID] = struct{}{}
			userIDs = append(userIDs, e.UserID)
		}
		if _, ok := seenSports[e.SportID]; !ok {
			seenSports[e.SportID] = struct{}{}
			sportIDs = append(sportIDs, e.SportID)
		}
	}

	profilesByID, err := s.profiles.ByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	sportsByID, err := s.sports.ByIDs(ctx, sportIDs)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		entry := &models.EnrichedLeaderboardEntry{LeaderboardEntry: *e}
		if p := profilesByID[e.UserID]; p != nil {
			entry.Owner = p.Summary()
		}
		entry.Sport = sportsByID[e.SportID]
		board = append(board, entry)
	}
	return board, nil
}
