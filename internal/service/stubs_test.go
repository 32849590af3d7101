package service

import (
	"context"
	"sync"

	"playreel/internal/models"
	"playreel/internal/repository"
	"playreel/internal/storage"
)

// Function-field stubs for the repository interfaces. Tests set only the
// fields they exercise; unset fields count the call and return zero values.

type clipRepoStub struct {
	createCalls int
	createFn    func(context.Context, *models.Clip) error
	getByIDFn   func(context.Context, string) (*models.Clip, error)
	existsFn    func(context.Context, string) (bool, error)
	listFn      func(context.Context, repository.ClipFilter) ([]*models.Clip, error)
}

func (s *clipRepoStub) Create(ctx context.Context, clip *models.Clip) error {
	s.createCalls++
	if s.createFn != nil {
		return s.createFn(ctx, clip)
	}
	return nil
}

func (s *clipRepoStub) GetByID(ctx context.Context, id string) (*models.Clip, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.Clip{ID: id}, nil
}

func (s *clipRepoStub) ExistsByStoragePath(ctx context.Context, path string) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, path)
	}
	return false, nil
}

func (s *clipRepoStub) List(ctx context.Context, f repository.ClipFilter) ([]*models.Clip, error) {
	if s.listFn != nil {
		return s.listFn(ctx, f)
	}
	return nil, nil
}

type sportRepoStub struct {
	mu          sync.Mutex
	bySlugCalls int
	byIDsCalls  int
	listFn      func(context.Context) ([]*models.Sport, error)
	bySlugFn    func(context.Context, string) (*models.Sport, error)
	byIDsFn     func(context.Context, []uint) (map[uint]*models.Sport, error)
}

func (s *sportRepoStub) List(ctx context.Context) ([]*models.Sport, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *sportRepoStub) BySlug(ctx context.Context, slug string) (*models.Sport, error) {
	s.mu.Lock()
	s.bySlugCalls++
	s.mu.Unlock()
	if s.bySlugFn != nil {
		return s.bySlugFn(ctx, slug)
	}
	return &models.Sport{ID: 1, Slug: slug, Name: slug}, nil
}

func (s *sportRepoStub) ByIDs(ctx context.Context, ids []uint) (map[uint]*models.Sport, error) {
	s.mu.Lock()
	s.byIDsCalls++
	s.mu.Unlock()
	if s.byIDsFn != nil {
		return s.byIDsFn(ctx, ids)
	}
	byID := make(map[uint]*models.Sport, len(ids))
	for _, id := range ids {
		byID[id] = &models.Sport{ID: id, Slug: "sport", Name: "Sport"}
	}
	return byID, nil
}

type profileRepoStub struct {
	mu         sync.Mutex
	byIDsCalls int
	upsertFn   func(context.Context, *models.Profile) error
	getByIDFn  func(context.Context, string) (*models.Profile, error)
	byIDsFn    func(context.Context, []string) (map[string]*models.Profile, error)
	updateFn   func(context.Context, *models.Profile) error
}

func (s *profileRepoStub) Upsert(ctx context.Context, p *models.Profile) error {
	if s.upsertFn != nil {
		return s.upsertFn(ctx, p)
	}
	return nil
}

func (s *profileRepoStub) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.Profile{ID: id, DisplayName: "Someone"}, nil
}

func (s *profileRepoStub) ByIDs(ctx context.Context, ids []string) (map[string]*models.Profile, error) {
	s.mu.Lock()
	s.byIDsCalls++
	s.mu.Unlock()
	if s.byIDsFn != nil {
		return s.byIDsFn(ctx, ids)
	}
	byID := make(map[string]*models.Profile, len(ids))
	for _, id := range ids {
		byID[id] = &models.Profile{ID: id, DisplayName: "Someone"}
	}
	return byID, nil
}

func (s *profileRepoStub) Update(ctx context.Context, p *models.Profile) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, p)
	}
	return nil
}

type engagementRepoStub struct {
	mu              sync.Mutex
	likeCountCalls  int
	likedCalls      int
	commentCtCalls  int
	toggleFn        func(context.Context, string, string) (bool, int64, error)
	countLikesFn    func(context.Context, string) (int64, error)
	countLikesByFn  func(context.Context, []string) (map[string]int64, error)
	likedClipIDsFn  func(context.Context, string, []string) ([]string, error)
	createCommentFn func(context.Context, *models.Comment) error
	listCommentsFn  func(context.Context, string, int, int) ([]*models.Comment, error)
	countCommentsFn func(context.Context, string) (int64, error)
	countCommByFn   func(context.Context, []string) (map[string]int64, error)
}

func (s *engagementRepoStub) ToggleLike(ctx context.Context, clipID, userID string) (bool, int64, error) {
	if s.toggleFn != nil {
		return s.toggleFn(ctx, clipID, userID)
	}
	return true, 1, nil
}

func (s *engagementRepoStub) CountLikes(ctx context.Context, clipID string) (int64, error) {
	if s.countLikesFn != nil {
		return s.countLikesFn(ctx, clipID)
	}
	return 0, nil
}

func (s *engagementRepoStub) CountLikesByClipIDs(ctx context.Context, clipIDs []string) (map[string]int64, error) {
	s.mu.Lock()
	s.likeCountCalls++
	s.mu.Unlock()
	if s.countLikesByFn != nil {
		return s.countLikesByFn(ctx, clipIDs)
	}
	return map[string]int64{}, nil
}

func (s *engagementRepoStub) LikedClipIDs(ctx context.Context, userID string, clipIDs []string) ([]string, error) {
	s.mu.Lock()
	s.likedCalls++
	s.mu.Unlock()
	if s.likedClipIDsFn != nil {
		return s.likedClipIDsFn(ctx, userID, clipIDs)
	}
	return nil, nil
}

func (s *engagementRepoStub) CreateComment(ctx context.Context, comment *models.Comment) error {
	if s.createCommentFn != nil {
		return s.createCommentFn(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (s *engagementRepoStub) ListCommentsByClip(ctx context.Context, clipID string, limit, offset int) ([]*models.Comment, error) {
	if s.listCommentsFn != nil {
		return s.listCommentsFn(ctx, clipID, limit, offset)
	}
	return nil, nil
}

func (s *engagementRepoStub) CountComments(ctx context.Context, clipID string) (int64, error) {
	if s.countCommentsFn != nil {
		return s.countCommentsFn(ctx, clipID)
	}
	return 0, nil
}

func (s *engagementRepoStub) CountCommentsByClipIDs(ctx context.Context, clipIDs []string) (map[string]int64, error) {
	s.mu.Lock()
	s.commentCtCalls++
	s.mu.Unlock()
	if s.countCommByFn != nil {
		return s.countCommByFn(ctx, clipIDs)
	}
	return map[string]int64{}, nil
}

type streakRepoStub struct {
	getFn  func(context.Context, string) (*models.Streak, error)
	saveFn func(context.Context, *models.Streak) error
	saved  []*models.Streak
}

func (s *streakRepoStub) Get(ctx context.Context, userID string) (*models.Streak, error) {
	if s.getFn != nil {
		return s.getFn(ctx, userID)
	}
	return &models.Streak{UserID: userID}, nil
}

func (s *streakRepoStub) Save(ctx context.Context, streak *models.Streak) error {
	copied := *streak
	s.saved = append(s.saved, &copied)
	if s.saveFn != nil {
		return s.saveFn(ctx, streak)
	}
	return nil
}

type signerStub struct {
	calls     int
	lastPath  string
	lastType  string
	presignFn func(context.Context, string, string) (*storage.PresignedUpload, error)
}

func (s *signerStub) PresignUpload(ctx context.Context, path, contentType string) (*storage.PresignedUpload, error) {
	s.calls++
	s.lastPath = path
	s.lastType = contentType
	if s.presignFn != nil {
		return s.presignFn(ctx, path, contentType)
	}
	return &storage.PresignedUpload{UploadURL: "https://signed.example/" + path, StoragePath: path}, nil
}

type leaderboardRepoStub struct {
	topFn func(context.Context, *uint, int) ([]*models.LeaderboardEntry, error)
}

func (s *leaderboardRepoStub) Top(ctx context.Context, sportID *uint, limit int) ([]*models.LeaderboardEntry, error) {
	if s.topFn != nil {
		return s.topFn(ctx, sportID, limit)
	}
	return nil, nil
}

type enqueuerStub struct {
	users []string
}

func (s *enqueuerStub) Enqueue(userID string) {
	s.users = append(s.users, userID)
}
