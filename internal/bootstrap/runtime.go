// Package bootstrap initializes shared runtime dependencies.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"playreel/internal/cache"
	"playreel/internal/config"
	"playreel/internal/database"
	"playreel/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedSports bool
}

// InitRuntime connects to DB and Redis and optionally upserts the
// built-in sports catalog.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May yield a nil client when Redis is unreachable; the API runs
	// degraded without it.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedSports {
		if err := seed.Sports(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed sports catalog: %w", err)
		}
		// A reseed may rename sports; drop the cached reference list so
		// the next read reflects it.
		cache.Invalidate(context.Background(), cache.SportsKey())
	}

	if strings.EqualFold(cfg.Env, "development") {
		log.Println("runtime initialized in development mode")
	}

	return db, r, nil
}
