// Package seed provides database seeding for development and testing:
// the built-in sports catalog plus generated profiles, clips, and
// engagement data. Not wired into production servers.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"playreel/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumProfiles int
	NumClips    int
	ShouldClean bool
}

// Seeder populates the database with generated development data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes generated data. The sports catalog survives so clip
// references stay valid after a reseed.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "comments", "streaks", "clips", "profiles"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the full development dataset: sports, profiles, clips,
// likes, comments, and streaks.
func (s *Seeder) Run(opts Options) error {
	log.Printf("seeding %d profiles and %d clips...", opts.NumProfiles, opts.NumClips)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	if err := Sports(s.db); err != nil {
		return err
	}
	var sports []*models.Sport
	if err := s.db.Find(&sports).Error; err != nil {
		return fmt.Errorf("load sports: %w", err)
	}

	profiles, err := s.SeedProfiles(opts.NumProfiles)
	if err != nil {
		return err
	}
	log.Printf("created %d profiles", len(profiles))

	clips, err := s.SeedClips(profiles, sports, opts.NumClips)
	if err != nil {
		return err
	}
	log.Printf("created %d clips", len(clips))

	if err := s.SeedEngagement(profiles, clips); err != nil {
		return err
	}
	if err := s.SeedStreaks(profiles); err != nil {
		return err
	}

	log.Println("seeding complete")
	return nil
}

// SeedProfiles generates n profiles with fake identity data.
func (s *Seeder) SeedProfiles(n int) ([]*models.Profile, error) {
	profiles := make([]*models.Profile, 0, n)
	for i := 0; i < n; i++ {
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(10, 99))
		avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
		profiles = append(profiles, &models.Profile{
			ID:          uuid.NewString(),
			DisplayName: gofakeit.Name(),
			Username:    &username,
			AvatarURL:   &avatar,
			Location:    gofakeit.City(),
			Bio:         gofakeit.Sentence(8),
		})
	}
	if len(profiles) == 0 {
		return profiles, nil
	}
	if err := s.db.Create(&profiles).Error; err != nil {
		return nil, fmt.Errorf("create profiles: %w", err)
	}
	return profiles, nil
}

// SeedClips generates n clips spread across the given profiles and
// sports, with created_at spread over the last 90 days.
func (s *Seeder) SeedClips(profiles []*models.Profile, sports []*models.Sport, n int) ([]*models.Clip, error) {
	if len(profiles) == 0 || len(sports) == 0 {
		return nil, nil
	}
	clips := make([]*models.Clip, 0, n)
	for i := 0; i < n; i++ {
		owner := profiles[s.rand.Intn(len(profiles))]
		sport := sports[s.rand.Intn(len(sports))]
		duration := s.rand.Intn(55) + 5
		width, height := 1080, 1920

		visibility := models.VisibilityPublic
		if s.rand.Intn(10) == 0 {
			visibility = models.VisibilityPrivate
		}

		clip := &models.Clip{
			ID:              uuid.NewString(),
			UserID:          owner.ID,
			SportID:         &sport.ID,
			StoragePath:     fmt.Sprintf("user/%s/%s.mp4", owner.ID, uuid.NewString()),
			Caption:         gofakeit.Sentence(s.rand.Intn(10) + 2),
			Visibility:      visibility,
			ThumbnailURL:    fmt.Sprintf("https://picsum.photos/seed/%s/540/960", gofakeit.UUID()),
			DurationSeconds: &duration,
			Width:           &width,
			Height:          &height,
			CreatedAt:       s.pastTime(90),
		}
		clips = append(clips, clip)
	}
	if err := s.db.Create(&clips).Error; err != nil {
		return nil, fmt.Errorf("create clips: %w", err)
	}
	return clips, nil
}

// SeedEngagement generates likes and comments from random profiles on
// random clips. Each (clip, user) likes at most once.
func (s *Seeder) SeedEngagement(profiles []*models.Profile, clips []*models.Clip) error {
	if len(profiles) == 0 || len(clips) == 0 {
		return nil
	}

	var likes []*models.Like
	seen := map[string]bool{}
	for _, clip := range clips {
		n := s.rand.Intn(len(profiles))
		for i := 0; i < n; i++ {
			user := profiles[s.rand.Intn(len(profiles))]
			key := clip.ID + ":" + user.ID
			if seen[key] {
				continue
			}
			seen[key] = true
			likes = append(likes, &models.Like{
				ClipID:    clip.ID,
				UserID:    user.ID,
				CreatedAt: s.pastTime(30),
			})
		}
	}
	if len(likes) > 0 {
		if err := s.db.CreateInBatches(&likes, 200).Error; err != nil {
			return fmt.Errorf("create likes: %w", err)
		}
	}

	var comments []*models.Comment
	for _, clip := range clips {
		n := s.rand.Intn(5)
		for i := 0; i < n; i++ {
			user := profiles[s.rand.Intn(len(profiles))]
			comments = append(comments, &models.Comment{
				ClipID:    clip.ID,
				UserID:    user.ID,
				Body:      gofakeit.Sentence(s.rand.Intn(12) + 2),
				CreatedAt: s.pastTime(30),
			})
		}
	}
	if len(comments) > 0 {
		if err := s.db.CreateInBatches(&comments, 200).Error; err != nil {
			return fmt.Errorf("create comments: %w", err)
		}
	}

	log.Printf("created %d likes, %d comments", len(likes), len(comments))
	return nil
}

// SeedStreaks gives roughly half the profiles an active streak ending
// today.
func (s *Seeder) SeedStreaks(profiles []*models.Profile) error {
	var streaks []*models.Streak
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, p := range profiles {
		if s.rand.Intn(2) == 0 {
			continue
		}
		current := s.rand.Intn(14) + 1
		longest := current + s.rand.Intn(20)
		last := today
		streaks = append(streaks, &models.Streak{
			UserID:           p.ID,
			CurrentStreak:    current,
			LongestStreak:    longest,
			LastActivityDate: &last,
		})
	}
	if len(streaks) == 0 {
		return nil
	}
	if err := s.db.Create(&streaks).Error; err != nil {
		return fmt.Errorf("create streaks: %w", err)
	}
	return nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rand.Intn(maxDays)
	hoursBack := s.rand.Intn(24)
	minsBack := s.rand.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}
