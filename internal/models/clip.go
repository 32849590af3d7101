package models

import "time"

// Clip visibility values.
const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
)

// ValidVisibility reports whether v is a recognized visibility value.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityFollowers, VisibilityPrivate:
		return true
	}
	return false
}

// Clip represents a user-submitted short video/image record. Clips are
// created once by the ingestion endpoint and never updated or deleted.
type Clip struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string    `gorm:"type:uuid;not null;index" json:"user_id"`
	SportID         *uint     `gorm:"index" json:"sport_id"`
	StoragePath     string    `gorm:"uniqueIndex;not null" json:"storage_path"`
	Caption         string    `json:"caption"`
	Visibility      string    `gorm:"not null;default:public" json:"visibility"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	DurationSeconds *int      `json:"duration_seconds"`
	Width           *int      `json:"width"`
	Height          *int      `json:"height"`
	CreatedAt       time.Time `json:"created_at"`
}

// EngagementMetrics bundles the per-clip read-side aggregates.
type EngagementMetrics struct {
	LikesCount    int  `json:"likes_count"`
	LikedByUser   bool `json:"liked_by_user"`
	CommentsCount int  `json:"comments_count"`
}

// EnrichedClip combines a clip with its resolved sport, owner profile
// fields, and engagement aggregates.
type EnrichedClip struct {
	Clip
	Sport   *Sport            `json:"sport"`
	Owner   *ProfileSummary   `json:"owner"`
	Metrics EngagementMetrics `json:"metrics"`
}
