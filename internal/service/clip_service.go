package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"playreel/internal/models"
	"playreel/internal/repository"
)

const (
	maxCaptionLen = 500
	maxClipPage   = 20
)

// storagePathPattern pins clip paths to the upload issuer's convention:
// user/<ownerId>/<anything>.
var storagePathPattern = regexp.MustCompile(`^user/([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})/.+$`)

// StreakEnqueuer is the async side of clip creation. Implemented by
// the streak worker; clip creation never blocks on it.
type StreakEnqueuer interface {
	Enqueue(userID string)
}

// ClipService owns clip ingestion and listing.
type ClipService struct {
	clips    repository.ClipRepository
	sports   repository.SportRepository
	hydrator *Hydrator
	streaks  StreakEnqueuer
}

type CreateClipInput struct {
	UserID          string
	SportSlug       string
	StoragePath     string
	Caption         string
	Visibility      string
	ThumbnailURL    string
	DurationSeconds *int
	Width           *int
	Height          *int
}

type ListClipsInput struct {
	SportSlug string
	UserID    string
	ViewerID  string
	Limit     int
	Offset    int
}

func NewClipService(
	clips repository.ClipRepository,
	sports repository.SportRepository,
	hydrator *Hydrator,
	streaks StreakEnqueuer,
) *ClipService {
	return &ClipService{clips: clips, sports: sports, hydrator: hydrator, streaks: streaks}
}

// CreateClip validates and persists a clip whose bytes were already
// uploaded to the caller's storage prefix, then enqueues the streak
// increment and returns the hydrated record.
func (s *ClipService) CreateClip(ctx context.Context, in CreateClipInput) (*models.EnrichedClip, error) {
	if err := s.validateCreate(&in); err != nil {
		return nil, err
	}

	// Each presigned path backs exactly one clip; a replayed create-url
	// response must not produce a second row.
	exists, err := s.clips.ExistsByStoragePath(ctx, in.StoragePath)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	if exists {
		return nil, models.NewInvalidBodyError("Invalid clip payload", map[string]any{
			"storagePath": "already registered to a clip",
		})
	}

	sport, err := s.sports.BySlug(ctx, in.SportSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("sport", in.SportSlug)
	}
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}

	clip := &models.Clip{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		SportID:         &sport.ID,
		StoragePath:     in.StoragePath,
		Caption:         in.Caption,
		Visibility:      in.Visibility,
		ThumbnailURL:    in.ThumbnailURL,
		DurationSeconds: in.DurationSeconds,
		Width:           in.Width,
		Height:          in.Height,
	}
	if err := s.clips.Create(ctx, clip); err != nil {
		return nil, models.NewDatabaseError(err)
	}

	if s.streaks != nil {
		s.streaks.Enqueue(in.UserID)
	}

	enriched, err := s.hydrator.Hydrate(ctx, []*models.Clip{clip}, in.UserID)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return enriched[0], nil
}

func (s *ClipService) validateCreate(in *CreateClipInput) error {
	details := map[string]any{}

	in.Caption = strings.TrimSpace(in.Caption)
	if utf8.RuneCountInString(in.Caption) > maxCaptionLen {
		details["caption"] = "must be at most 500 characters"
	}
	if in.Visibility == "" {
		in.Visibility = models.VisibilityPublic
	} else if !models.ValidVisibility(in.Visibility) {
		details["visibility"] = "must be public, followers, or private"
	}
	if in.SportSlug == "" {
		details["sportSlug"] = "is required"
	}
	for field, v := range map[string]*int{
		"durationSeconds": in.DurationSeconds,
		"width":           in.Width,
		"height":          in.Height,
	} {
		if v != nil && *v <= 0 {
			details[field] = "must be a positive integer"
		}
	}

	m := storagePathPattern.FindStringSubmatch(in.StoragePath)
	switch {
	case m == nil:
		details["storagePath"] = "must match user/<ownerId>/<object>"
	case m[1] != in.UserID:
		// Owner mismatch gets the same shape error; no hint that the
		// prefix belongs to another user.
		details["storagePath"] = "must match user/<ownerId>/<object>"
	}

	if len(details) > 0 {
		return models.NewInvalidBodyError("Invalid clip payload", details)
	}
	return nil
}

// ListClips returns the newest clips matching the filter, hydrated.
// An unknown sport slug yields an empty page rather than an error.
func (s *ClipService) ListClips(ctx context.Context, in ListClipsInput) ([]*models.EnrichedClip, error) {
	if in.Limit <= 0 || in.Limit > maxClipPage {
		in.Limit = maxClipPage
	}

	filter := repository.ClipFilter{
		UserID:   in.UserID,
		ViewerID: in.ViewerID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if in.SportSlug != "" {
		sport, err := s.sports.BySlug(ctx, in.SportSlug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []*models.EnrichedClip{}, nil
		}
		if err != nil {
			return nil, models.NewDatabaseError(err)
		}
		filter.SportID = &sport.ID
	}

	clips, err := s.clips.List(ctx, filter)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}

	enriched, err := s.hydrator.Hydrate(ctx, clips, in.ViewerID)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return enriched, nil
}
