package seed

import (
	"strings"
	"testing"

	"playreel/internal/models"
)

func TestSeeder_Run(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	s := NewSeeder(db)

	err := s.Run(Options{NumProfiles: 10, NumClips: 40, ShouldClean: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var profileCount, clipCount int64
	if err := db.Model(&models.Profile{}).Count(&profileCount).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if profileCount != 10 {
		t.Fatalf("expected 10 profiles, got %d", profileCount)
	}
	if err := db.Model(&models.Clip{}).Count(&clipCount).Error; err != nil {
		t.Fatalf("count clips: %v", err)
	}
	if clipCount != 40 {
		t.Fatalf("expected 40 clips, got %d", clipCount)
	}

	var clips []*models.Clip
	if err := db.Find(&clips).Error; err != nil {
		t.Fatalf("load clips: %v", err)
	}
	for _, clip := range clips {
		wantPrefix := "user/" + clip.UserID + "/"
		if !strings.HasPrefix(clip.StoragePath, wantPrefix) {
			t.Fatalf("clip %s storage path %q not under owner prefix", clip.ID, clip.StoragePath)
		}
		if clip.SportID == nil {
			t.Fatalf("clip %s has no sport", clip.ID)
		}
		if clip.DurationSeconds == nil || *clip.DurationSeconds <= 0 {
			t.Fatalf("clip %s has invalid duration", clip.ID)
		}
	}

	// likes must stay unique per (clip, user)
	rows, err := db.Raw(`
		SELECT clip_id, user_id
		FROM likes
		GROUP BY clip_id, user_id
		HAVING COUNT(*) > 1
	`).Rows()
	if err != nil {
		t.Fatalf("duplicate like check: %v", err)
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		t.Fatal("found duplicate likes for a clip/user pair")
	}
}

func TestSeeder_ClearAllKeepsSports(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	s := NewSeeder(db)

	if err := s.Run(Options{NumProfiles: 5, NumClips: 10}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := s.ClearAll(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	var profileCount, sportCount int64
	if err := db.Model(&models.Profile{}).Count(&profileCount).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if profileCount != 0 {
		t.Fatalf("expected profiles cleared, got %d", profileCount)
	}
	if err := db.Model(&models.Sport{}).Count(&sportCount).Error; err != nil {
		t.Fatalf("count sports: %v", err)
	}
	if sportCount == 0 {
		t.Fatal("sports catalog should survive ClearAll")
	}
}
