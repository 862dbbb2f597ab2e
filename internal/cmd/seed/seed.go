// Package seed fills the signup store with sample data for local work.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/daily-aivey/soundchain-landing-page-new/internal/platform/config"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/storage"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/storage/sqlite"
)

// Config holds the seed command configuration.
type Config struct {
	DatabasePath string `env:"SOUNDCHAIN_DB_PATH" envDefault:"soundchain.db"`
	Count        int    `env:"SOUNDCHAIN_SEED_COUNT" envDefault:"250"`
}

// ParseConfig loads Config from the environment, then applies flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "SQLite database path")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "number of sample signups to insert")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Count < 0 {
		return Config{}, fmt.Errorf("count must be non-negative, got %d", cfg.Count)
	}
	return cfg, nil
}

// Run inserts cfg.Count sample signups, skipping ones already present.
func Run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open signup store: %w", err)
	}
	defer store.Close()

	inserted, err := Populate(ctx, store, cfg.Count)
	if err != nil {
		return err
	}
	log.Printf("seeded %d signups (%d new)", cfg.Count, inserted)
	return nil
}

// Populate inserts up to count generated signups and returns how many were
// new. Re-running against the same store is safe.
func Populate(ctx context.Context, store storage.SignupStore, count int) (int, error) {
	inserted := 0
	for i := 0; i < count; i++ {
		record := storage.Signup{
			Email:     fmt.Sprintf("fan%04d@example.com", i),
			CreatedAt: time.Now().UTC(),
		}
		err := store.AddSignup(ctx, record)
		if errors.Is(err, storage.ErrDuplicateSignup) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed signup %s: %w", record.Email, err)
		}
		inserted++
	}
	return inserted, nil
}
