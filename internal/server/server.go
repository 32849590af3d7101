// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"playreel/internal/bootstrap"
	"playreel/internal/config"
	"playreel/internal/featureflags"
	"playreel/internal/middleware"
	"playreel/internal/models"
	"playreel/internal/repository"
	"playreel/internal/service"
	"playreel/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	likeRateWindow    = 500 * time.Millisecond
	commentRateWindow = 2 * time.Second
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	repos          *repository.Repositories
	limiter        middleware.Limiter
	streakWorker   *service.StreakWorker
	featureFlags   *featureflags.Manager

	uploadService      *service.UploadService
	clipService        *service.ClipService
	engagementService  *service.EngagementService
	streakService      *service.StreakService
	leaderboardService *service.LeaderboardService
	profileService     *service.ProfileService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedSports: true})
	if err != nil {
		return nil, err
	}

	signer, err := storage.NewS3Signer(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	var rl middleware.Limiter
	if redisClient != nil {
		rl = middleware.NewRedisLimiter(redisClient)
	} else {
		rl = middleware.NewMemoryLimiter()
	}

	return NewServerWithDeps(cfg, db, redisClient, signer, rl)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by a bootstrap layer that establishes DB/Redis itself.
func NewServerWithDeps(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	signer storage.Signer,
	rl middleware.Limiter,
) (*Server, error) {
	repos := repository.NewRepositories(db)
	prom := middleware.InitMetrics("playreel-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		repos:          repos,
		limiter:        rl,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	hydrator := service.NewHydrator(repos.Engagement, repos.Profiles, repos.Sports)
	server.streakService = service.NewStreakService(repos.Streaks)
	server.streakWorker = service.NewStreakWorker(server.streakService)
	server.uploadService = service.NewUploadService(signer)
	server.clipService = service.NewClipService(repos.Clips, repos.Sports, hydrator, server.streakWorker)
	server.engagementService = service.NewEngagementService(repos.Engagement, repos.Profiles)
	server.leaderboardService = service.NewLeaderboardService(repos.Leaderboard, repos.Profiles, repos.Sports)
	server.profileService = service.NewProfileService(repos.Profiles, repos.Sports)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitedError(0))
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Playreel Backend Metrics Dashboard",
	}))

	// Public routes (optional auth widens visibility)
	api.Get("/clips", s.GetClips)
	api.Get("/clips/:id/comments", s.GetComments)
	api.Get("/leaderboard", s.GetLeaderboard)
	api.Get("/sports", s.GetSports)

	// Protected routes
	protected := api.Group("", s.AuthRequired())
	protected.Post("/auth/callback", s.AuthCallback)
	protected.Get("/profile/me", s.GetMyProfile)
	protected.Put("/profile/me", s.UpdateMyProfile)

	protected.Post("/upload/create-url", s.CreateUploadURL)
	protected.Post("/clips", s.CreateClip)
	protected.Post("/clips/:id/like",
		middleware.PerUserRateLimit(s.limiter, likeRateWindow, "like", "id"), s.ToggleLike)
	protected.Post("/clips/:id/comments",
		middleware.PerUserRateLimit(s.limiter, commentRateWindow, "comment", "id"), s.CreateComment)

	protected.Post("/streak/increment", s.IncrementStreak)
	protected.Get("/streak", s.GetStreak)

	protected.Get("/flags", s.GetFeatureFlags)
}

// GetFeatureFlags returns configured flags evaluated for the caller.
// Clients use this to gate experimental UI without another round trip.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"flags": s.featureFlags.Snapshot(userID),
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades without Redis (no cache, memory limiter) but
		// stays up; report it rather than failing readiness.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. The identity
// provider signs HS256 tokens whose subject is the user's UUID.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := s.userIDFromRequest(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		c.Locals("userID", userID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// userIDFromRequest validates the bearer token and returns the subject UUID.
func (s *Server) userIDFromRequest(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithIssuer(s.config.JWTIssuer),
		jwt.WithAudience(s.config.JWTAudience),
	)
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", false
	}
	if _, err := uuid.Parse(sub); err != nil {
		return "", false
	}
	return sub, true
}

// optionalUserID extracts the user id when a valid token is present but
// never enforces one. Public listing endpoints use it to widen visibility.
func (s *Server) optionalUserID(c *fiber.Ctx) string {
	userID, _ := s.userIDFromRequest(c)
	return userID
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Playreel API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.streakWorker.Start()

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Drain queued streak jobs before closing the database.
	if s.streakWorker != nil {
		s.streakWorker.Shutdown()
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
