// Package models contains data structures for the application's domain models.
package models

import "time"

// Profile represents a user profile. The ID is the identity provider's
// user id (a UUID string) and is shared across services.
type Profile struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `json:"display_name"`
	Username    *string   `gorm:"uniqueIndex" json:"username"`
	AvatarURL   *string   `json:"avatar_url"`
	Location    string    `json:"location"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileSummary is the subset of profile fields denormalized onto
// clips and comments. Fields default to null when the profile is missing.
type ProfileSummary struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Username    *string `json:"username"`
	AvatarURL   *string `json:"avatar_url"`
}

// Summary returns the denormalized view of the profile.
func (p *Profile) Summary() *ProfileSummary {
	return &ProfileSummary{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Username:    p.Username,
		AvatarURL:   p.AvatarURL,
	}
}
