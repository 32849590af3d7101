package models

import "time"

// Streak tracks consecutive days with recorded activity for a user.
// LastActivityDate is truncated to a UTC calendar day.
type Streak struct {
	UserID           string     `gorm:"type:uuid;primaryKey" json:"user_id"`
	CurrentStreak    int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak    int        `gorm:"not null;default:0" json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
