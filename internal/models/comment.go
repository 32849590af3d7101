package models

import "time"

// Comment represents a comment on a clip. Comments are never mutated
// or deleted once created.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClipID    string    `gorm:"type:uuid;not null;index" json:"clip_id"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// EnrichedComment combines a comment with the commenter's profile fields.
type EnrichedComment struct {
	Comment
	Owner *ProfileSummary `json:"owner"`
}
