package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"playreel/internal/config"
	"playreel/internal/featureflags"
	"playreel/internal/middleware"
	"playreel/internal/models"
	"playreel/internal/repository"
	"playreel/internal/service"
	"playreel/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret = "test-secret-test-secret-test-secret!"
	aliceID    = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	bobID      = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

// memStore is an in-memory implementation of every repository interface,
// good enough for exercising handlers end to end without a database.
type memStore struct {
	mu       sync.Mutex
	clips    map[string]*models.Clip
	likes    map[string]map[string]bool // clipID -> userID -> liked
	comments []*models.Comment
	profiles map[string]*models.Profile
	sports   map[string]*models.Sport
	streaks  map[string]*models.Streak
	board    []*models.LeaderboardEntry
	nextID   uint
}

func newMemStore() *memStore {
	return &memStore{
		clips:    map[string]*models.Clip{},
		likes:    map[string]map[string]bool{},
		profiles: map[string]*models.Profile{},
		sports: map[string]*models.Sport{
			"tennis": {ID: 1, Slug: "tennis", Name: "Tennis"},
			"soccer": {ID: 2, Slug: "soccer", Name: "Soccer"},
		},
		streaks: map[string]*models.Streak{},
		nextID:  1,
	}
}

func (m *memStore) Create(_ context.Context, clip *models.Clip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clip.CreatedAt = time.Now()
	m.clips[clip.ID] = clip
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*models.Clip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clip, ok := m.clips[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clip, nil
}

func (m *memStore) ExistsByStoragePath(_ context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, clip := range m.clips {
		if clip.StoragePath == path {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) List(_ context.Context, f repository.ClipFilter) ([]*models.Clip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Clip
	for _, clip := range m.clips {
		if f.UserID != "" && clip.UserID != f.UserID {
			continue
		}
		if f.SportID != nil && (clip.SportID == nil || *clip.SportID != *f.SportID) {
			continue
		}
		if clip.Visibility != models.VisibilityPublic && clip.UserID != f.ViewerID {
			continue
		}
		out = append(out, clip)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memStore) ToggleLike(_ context.Context, clipID, userID string) (bool, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.likes[clipID] == nil {
		m.likes[clipID] = map[string]bool{}
	}
	m.likes[clipID][userID] = !m.likes[clipID][userID]
	var count int64
	for _, liked := range m.likes[clipID] {
		if liked {
			count++
		}
	}
	return m.likes[clipID][userID], count, nil
}

func (m *memStore) CountLikes(_ context.Context, clipID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, liked := range m.likes[clipID] {
		if liked {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CountLikesByClipIDs(_ context.Context, clipIDs []string) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, id := range clipIDs {
		n, _ := m.CountLikes(context.Background(), id)
		if n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

func (m *memStore) LikedClipIDs(_ context.Context, userID string, clipIDs []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, id := range clipIDs {
		if m.likes[id][userID] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *memStore) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = m.nextID
	m.nextID++
	comment.CreatedAt = time.Now()
	m.comments = append(m.comments, comment)
	return nil
}

func (m *memStore) ListCommentsByClip(_ context.Context, clipID string, limit, offset int) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Comment
	for _, c := range m.comments {
		if c.ClipID == clipID {
			out = append(out, c)
		}
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CountComments(_ context.Context, clipID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, c := range m.comments {
		if c.ClipID == clipID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CountCommentsByClipIDs(_ context.Context, clipIDs []string) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, id := range clipIDs {
		n, _ := m.CountComments(context.Background(), id)
		if n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

func (m *memStore) Upsert(_ context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.profiles[profile.ID]; ok {
		existing.DisplayName = profile.DisplayName
		if profile.AvatarURL != nil {
			existing.AvatarURL = profile.AvatarURL
		}
		return nil
	}
	m.profiles[profile.ID] = profile
	return nil
}

func (m *memStore) GetProfileByID(_ context.Context, id string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (m *memStore) ByIDs(_ context.Context, ids []string) (map[string]*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]*models.Profile{}
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memStore) Update(_ context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
	return nil
}

func (m *memStore) ListSports(_ context.Context) ([]*models.Sport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Sport
	for _, s := range m.sports {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) BySlug(_ context.Context, slug string) (*models.Sport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sport, ok := m.sports[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sport, nil
}

func (m *memStore) SportsByIDs(_ context.Context, ids []uint) (map[uint]*models.Sport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[uint]*models.Sport{}
	for _, s := range m.sports {
		for _, id := range ids {
			if s.ID == id {
				out[id] = s
			}
		}
	}
	return out, nil
}

func (m *memStore) GetStreak(_ context.Context, userID string) (*models.Streak, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if streak, ok := m.streaks[userID]; ok {
		copied := *streak
		return &copied, nil
	}
	return &models.Streak{UserID: userID}, nil
}

func (m *memStore) Save(_ context.Context, streak *models.Streak) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *streak
	m.streaks[streak.UserID] = &copied
	return nil
}

func (m *memStore) Top(_ context.Context, sportID *uint, limit int) ([]*models.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.LeaderboardEntry
	for _, e := range m.board {
		if sportID != nil && e.SportID != *sportID {
			continue
		}
		out = append(out, e)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Adapter views so one memStore can stand in for every repository.

type clipView struct{ *memStore }
type engagementView struct{ *memStore }
type profileView struct{ *memStore }
type sportView struct{ *memStore }
type streakView struct{ *memStore }
type leaderboardView struct{ *memStore }

func (v profileView) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return v.memStore.GetProfileByID(ctx, id)
}

func (v sportView) List(ctx context.Context) ([]*models.Sport, error) {
	return v.memStore.ListSports(ctx)
}

func (v sportView) ByIDs(ctx context.Context, ids []uint) (map[uint]*models.Sport, error) {
	return v.memStore.SportsByIDs(ctx, ids)
}

func (v streakView) Get(ctx context.Context, userID string) (*models.Streak, error) {
	return v.memStore.GetStreak(ctx, userID)
}

func memRepositories(store *memStore) *repository.Repositories {
	return &repository.Repositories{
		Clips:       clipView{store},
		Engagement:  engagementView{store},
		Profiles:    profileView{store},
		Sports:      sportView{store},
		Streaks:     streakView{store},
		Leaderboard: leaderboardView{store},
	}
}

// allowAllLimiter bypasses per-user rate limiting in handler tests that
// are not about throttling.
type allowAllLimiter struct{}

func (allowAllLimiter) Allow(context.Context, string, time.Duration) (middleware.Decision, error) {
	return middleware.Decision{Allowed: true}, nil
}

type fakeSigner struct{}

func (fakeSigner) PresignUpload(_ context.Context, path, _ string) (*storage.PresignedUpload, error) {
	return &storage.PresignedUpload{
		UploadURL:   "https://storage.test/" + path,
		StoragePath: path,
		ExpiresAt:   time.Now().Add(15 * time.Minute),
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   testSecret,
		JWTIssuer:   "playreel-auth",
		JWTAudience: "playreel-client",
	}
}

// newTestApp wires a Server over the in-memory store and returns the app.
func newTestApp(t *testing.T, store *memStore, rl middleware.Limiter) (*fiber.App, *Server) {
	t.Helper()
	if rl == nil {
		rl = allowAllLimiter{}
	}

	repos := memRepositories(store)
	srv := &Server{
		config:       testConfig(),
		repos:        repos,
		limiter:      rl,
		featureFlags: featureflags.NewManager("clip_drafts=on,leaderboard_v2=off"),
	}
	hydrator := service.NewHydrator(repos.Engagement, repos.Profiles, repos.Sports)
	srv.streakService = service.NewStreakService(repos.Streaks)
	srv.uploadService = service.NewUploadService(fakeSigner{})
	srv.clipService = service.NewClipService(repos.Clips, repos.Sports, hydrator, nil)
	srv.engagementService = service.NewEngagementService(repos.Engagement, repos.Profiles)
	srv.leaderboardService = service.NewLeaderboardService(repos.Leaderboard, repos.Profiles, repos.Sports)
	srv.profileService = service.NewProfileService(repos.Profiles, repos.Sports)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv
}

// bearerToken signs a valid HS256 token for the given subject.
func bearerToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iss": "playreel-auth",
		"aud": "playreel-client",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func authedRequest(t *testing.T, method, target, body, sub string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if sub != "" {
		req.Header.Set("Authorization", bearerToken(t, sub))
	}
	return req
}
