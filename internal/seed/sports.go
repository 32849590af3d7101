package seed

import (
	_ "embed"
	"fmt"

	"playreel/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed sports.yaml
var sportsYAML []byte

type sportsFile struct {
	Sports []struct {
		Slug string `yaml:"slug"`
		Name string `yaml:"name"`
	} `yaml:"sports"`
}

// BuiltInSports returns the reference sports catalog shipped with the
// binary.
func BuiltInSports() ([]models.Sport, error) {
	var file sportsFile
	if err := yaml.Unmarshal(sportsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse sports catalog: %w", err)
	}
	sports := make([]models.Sport, 0, len(file.Sports))
	for _, s := range file.Sports {
		sports = append(sports, models.Sport{Slug: s.Slug, Name: s.Name})
	}
	return sports, nil
}

// Sports upserts the built-in sports catalog. Safe to run on every
// deploy; existing rows keep their IDs.
func Sports(db *gorm.DB) error {
	sports, err := BuiltInSports()
	if err != nil {
		return err
	}
	for _, sport := range sports {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).Create(&sport).Error
		if err != nil {
			return fmt.Errorf("seed sport %s: %w", sport.Slug, err)
		}
	}
	return nil
}
