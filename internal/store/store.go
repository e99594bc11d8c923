// Package store provides PostgreSQL persistence for user profiles,
// user-media interactions and streaming platforms. The schema is described
// in schema.sql.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new store backed by a connection pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Interactions returns an InteractionRepository.
func (s *Store) Interactions() *InteractionRepository {
	return &InteractionRepository{pool: s.pool}
}

// Profiles returns a ProfileRepository.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{pool: s.pool}
}

// Platforms returns a PlatformRepository.
func (s *Store) Platforms() *PlatformRepository {
	return &PlatformRepository{pool: s.pool}
}
