// Package bootstrap wires up runtime dependencies before the server starts.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"atelier/internal/cache"
	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/models"
	"atelier/internal/repository"
	"atelier/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis, prepares the upload
// directory, ensures the profile singleton exists, and optionally seeds
// demo content.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create upload directory: %w", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	if err := profileRepo.EnsureDefault(context.Background(), models.Profile{
		Name:     "Site Owner",
		Headline: "Welcome to my portfolio",
	}); err != nil {
		return nil, nil, fmt.Errorf("ensure profile: %w", err)
	}

	if opts.SeedDemoData {
		if err := seed.DemoData(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
