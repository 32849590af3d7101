package models

// LeaderboardEntry maps a row of the precomputed leaderboard_entries
// database view. The view's computation is entirely database-side;
// this model has no write path.
type LeaderboardEntry struct {
	UserID    string `gorm:"type:uuid" json:"user_id"`
	SportID   uint   `json:"sport_id"`
	Score     int    `json:"score"`
	ClipCount int    `json:"clip_count"`
}

// TableName pins the view name so gorm does not pluralize it.
func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}

// EnrichedLeaderboardEntry combines a view row with resolved profile
// and sport data.
type EnrichedLeaderboardEntry struct {
	LeaderboardEntry
	Owner *ProfileSummary `json:"owner"`
	Sport *Sport          `json:"sport"`
}
