package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"playreel/internal/models"
	"playreel/internal/repository"
)

const maxCommentLen = 300

// EngagementService owns like toggles and comments.
type EngagementService struct {
	engagement repository.EngagementRepository
	profiles   repository.ProfileRepository
}

// LikeResult reports the state after a toggle.
type LikeResult struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

type CreateCommentInput struct {
	UserID string
	ClipID string
	Body   string
}

func NewEngagementService(
	engagement repository.EngagementRepository,
	profiles repository.ProfileRepository,
) *EngagementService {
	return &EngagementService{engagement: engagement, profiles: profiles}
}

// ToggleLike flips the caller's like on a clip and returns the new state.
func (s *EngagementService) ToggleLike(ctx context.Context, clipID, userID string) (*LikeResult, error) {
	liked, count, err := s.engagement.ToggleLike(ctx, clipID, userID)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return &LikeResult{Liked: liked, Count: count}, nil
}

// CreateComment validates, inserts, and returns the comment with the
// commenter's profile denormalized onto it.
func (s *EngagementService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.EnrichedComment, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewInvalidBodyError("Invalid comment", map[string]any{
			"body": "must not be empty",
		})
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return nil, models.NewInvalidBodyError("Invalid comment", map[string]any{
			"body": "must be at most 300 characters",
		})
	}

	comment := &models.Comment{ClipID: in.ClipID, UserID: in.UserID, Body: body}
	if err := s.engagement.CreateComment(ctx, comment); err != nil {
		return nil, models.NewDatabaseError(err)
	}

	enriched := &models.EnrichedComment{Comment: *comment}
	if profile, err := s.profiles.GetByID(ctx, in.UserID); err == nil {
		enriched.Owner = profile.Summary()
	}
	return enriched, nil
}

// ListComments returns a clip's comments oldest first, with commenter
// profiles batch-resolved.
func (s *EngagementService) ListComments(ctx context.Context, clipID string, limit, offset int) ([]*models.EnrichedComment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	comments, err := s.engagement.ListCommentsByClip(ctx, clipID, limit, offset)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}

	enriched := make([]*models.EnrichedComment, 0, len(comments))
	if len(comments) == 0 {
		return enriched, nil
	}

	ids := make([]string, 0, len(comments))
	seen := map[string]struct{}{}
	for _, c := range comments {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			ids = append(ids, c.UserID)
		}
	}
	profilesByID, err := s.profiles.ByIDs(ctx, ids)
	if err != nil {
		return nil, models.NewDatabaseError(err)
	}

	for _, c := range comments {
		ec := &models.EnrichedComment{Comment: *c}
		if p := profilesByID[c.UserID]; p != nil {
			ec.Owner = p.Summary()
		}
		enriched = append(enriched, ec)
	}
	return enriched, nil
}
