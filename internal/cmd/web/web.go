// Package web wires configuration for the landing page server.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/daily-aivey/soundchain-landing-page-new/internal/platform/config"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/platform/otel"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/services/web"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/signup"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/storage/sqlite"
)

// Config holds the web command configuration. Environment variables are
// the primary source; flags override them.
type Config struct {
	HTTPAddr     string        `env:"SOUNDCHAIN_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	DatabasePath string        `env:"SOUNDCHAIN_DB_PATH" envDefault:"soundchain.db"`
	SignupGoal   int           `env:"SOUNDCHAIN_SIGNUP_GOAL" envDefault:"1000"`
	FailSafe     time.Duration `env:"SOUNDCHAIN_REVEAL_FAILSAFE" envDefault:"8s"`
}

// ParseConfig loads Config from the environment, then applies flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "SQLite database path")
	fs.IntVar(&cfg.SignupGoal, "goal", cfg.SignupGoal, "signup goal for the progress counter")
	fs.DurationVar(&cfg.FailSafe, "failsafe", cfg.FailSafe, "reveal failsafe delay, 0 disables")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the landing page server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "soundchain-web")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open signup store: %w", err)
	}
	defer store.Close()

	signups, err := signup.NewService(store, cfg.SignupGoal)
	if err != nil {
		return fmt.Errorf("init signup service: %w", err)
	}

	elements, err := web.PageElements()
	if err != nil {
		return fmt.Errorf("load page manifest: %w", err)
	}

	server, err := web.NewServer(web.Config{
		Addr:     cfg.HTTPAddr,
		FailSafe: cfg.FailSafe,
	}, signups, elements)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
