package models

import "time"

// Like represents a user's like on a clip.
// The combination of ClipID and UserID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClipID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_clip_user" json:"clip_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_clip_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
