// Package repository provides data access layer implementations for the application.
package repository

import "gorm.io/gorm"

// Repositories bundles every repository for dependency injection.
type Repositories struct {
	Clips       ClipRepository
	Engagement  EngagementRepository
	Profiles    ProfileRepository
	Sports      SportRepository
	Streaks     StreakRepository
	Leaderboard LeaderboardRepository
}

// NewRepositories wires all repositories against one gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Clips:       NewClipRepository(db),
		Engagement:  NewEngagementRepository(db),
		Profiles:    NewProfileRepository(db),
		Sports:      NewSportRepository(db),
		Streaks:     NewStreakRepository(db),
		Leaderboard: NewLeaderboardRepository(db),
	}
}
