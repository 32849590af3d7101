package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"playreel/internal/models"
	"playreel/internal/repository"
)

// Hydrator enriches clip rows with owner profiles, sports, and
// engagement aggregates in batched lookups.
type Hydrator struct {
	engagement repository.EngagementRepository
	profiles   repository.ProfileRepository
	sports     repository.SportRepository
}

func NewHydrator(
	engagement repository.EngagementRepository,
	profiles repository.ProfileRepository,
	sports repository.SportRepository,
) *Hydrator {
	return &Hydrator{engagement: engagement, profiles: profiles, sports: sports}
}

// Hydrate resolves all cross-record data for a page of clips. The four
// lookups run concurrently; any failure fails the whole batch. A missing
// profile or sport leaves null fields on the affected record only.
func (h *Hydrator) Hydrate(ctx context.Context, clips []*models.Clip, currentUserID string) ([]*models.EnrichedClip, error) {
	enriched := make([]*models.EnrichedClip, 0, len(clips))
	if len(clips) == 0 {
		return enriched, nil
	}

	clipIDs := make([]string, 0, len(clips))
	ownerIDs := make([]string, 0, len(clips))
	sportIDs := make([]uint, 0, len(clips))
	seenOwners := map[string]struct{}{}
	seenSports := map[uint]struct{}{}
	for _, clip := range clips {
		clipIDs = append(clipIDs, clip.ID)
		if _, ok := seenOwners[clip.UserID]; !ok {
			seenOwners[clip.UserID] = struct{}{}
			ownerIDs = append(ownerIDs, clip.UserID)
		}
		if clip.SportID != nil {
			if _, ok := seenSports[*clip.SportID]; !ok {
				seenSports[*clip.SportID] = struct{}{}
				sportIDs = append(sportIDs, *clip.SportID)
			}
		}
	}

	var (
		profilesByID  map[string]*models.Profile
		sportsByID    map[uint]*models.Sport
		likeCounts    map[string]int64
		commentCounts map[string]int64
		likedSet      map[string]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profilesByID, err = h.profiles.ByIDs(gctx, ownerIDs)
		return err
	})
	g.Go(func() error {
		var err error
		sportsByID, err = h.sports.ByIDs(gctx, sportIDs)
		return err
	})
	g.Go(func() error {
		var err error
		likeCounts, err = h.engagement.CountLikesByClipIDs(gctx, clipIDs)
		if err != nil || currentUserID == "" {
			return err
		}
		liked, err := h.engagement.LikedClipIDs(gctx, currentUserID, clipIDs)
		if err != nil {
			return err
		}
		likedSet = make(map[string]struct{}, len(liked))
		for _, id := range liked {
			likedSet[id] = struct{}{}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		commentCounts, err = h.engagement.CountCommentsByClipIDs(gctx, clipIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, clip := range clips {
		ec := &models.EnrichedClip{Clip: *clip}
		if p := profilesByID[clip.UserID]; p != nil {
			ec.Owner = p.Summary()
		}
		if clip.SportID != nil {
			ec.Sport = sportsByID[*clip.SportID]
		}
		ec.Metrics.LikesCount = int(likeCounts[clip.ID])
		ec.Metrics.CommentsCount = int(commentCounts[clip.ID])
		if _, ok := likedSet[clip.ID]; ok {
			ec.Metrics.LikedByUser = true
		}
		enriched = append(enriched, ec)
	}
	return enriched, nil
}
