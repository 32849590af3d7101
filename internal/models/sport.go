package models

// Sport is static reference data seeded out-of-band; read-only at runtime.
type Sport struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	Name string `gorm:"not null" json:"name"`
}
