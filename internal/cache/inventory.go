package cache

import (
	"fmt"
	"time"
)

// TTLs per cached dataset. Leaderboard is refreshed by an external job so a
// short TTL keeps reads fresh without hammering the view.
const (
	LeaderboardTTL = 60 * time.Second
	SportsTTL      = 10 * time.Minute
)

func LeaderboardKey(sportSlug string, limit int) string {
	if sportSlug == "" {
		sportSlug = "all"
	}
	return fmt.Sprintf("leaderboard:%s:%d", sportSlug, limit)
}

func SportsKey() string {
	return "sports:all"
}
