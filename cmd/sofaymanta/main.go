// Command sofaymanta runs the media discovery API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/sofaymanta/sofaymanta-backend/internal/config"
	"github.com/sofaymanta/sofaymanta-backend/internal/media"
	"github.com/sofaymanta/sofaymanta-backend/internal/recommend"
	"github.com/sofaymanta/sofaymanta-backend/internal/store"
	"github.com/sofaymanta/sofaymanta-backend/internal/supabase"
	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
	"github.com/sofaymanta/sofaymanta-backend/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	catalog, err := tmdb.NewClient(cfg.TMDB.AccessToken)
	if err != nil {
		return fmt.Errorf("creating catalog client: %w", err)
	}

	ctx := context.Background()
	db, err := store.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	var auth *supabase.AdminClient
	if cfg.Supabase.URL != "" && cfg.Supabase.ServiceKey != "" {
		auth, err = supabase.NewAdminClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
		if err != nil {
			return fmt.Errorf("creating auth admin client: %w", err)
		}
	} else {
		log.Warn().Msg("auth admin client not configured, account deletion will only anonymize profiles")
	}

	handlersCfg := web.HandlersConfig{
		Media:           media.NewService(catalog, cfg.Server.DefaultLanguage),
		Recommender:     recommend.NewService(catalog, db.Interactions(), db.Profiles(), log),
		Interactions:    db.Interactions(),
		Profiles:        db.Profiles(),
		Platforms:       db.Platforms(),
		Log:             log,
		DefaultLanguage: cfg.Server.DefaultLanguage,
	}
	if auth != nil {
		handlersCfg.Auth = auth
	}

	server := web.NewServer(web.ServerConfig{
		Addr:            cfg.Server.Addr,
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: cfg.Server.RateLimitWindow,
		Handlers:        web.NewHandlers(handlersCfg),
		Log:             log,
	})

	return server.Run()
}

// newLogger builds the process logger from config. Format "console" gives
// human-readable output for local development.
func newLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	logger := zerolog.New(os.Stderr)
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}
