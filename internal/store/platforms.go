package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const platformColumns = `id, code, name, logo_url, is_active, created_at, updated_at`

// tmdbProviderIDs maps this application's platform codes to TMDB
// watch-provider ids for discovery filtering. Codes without a mapping are
// skipped when building the provider filter.
var tmdbProviderIDs = map[string]int{
	"netflix":        8,
	"prime_video":    119,
	"disney_plus":    337,
	"hbo_max":        384,
	"apple_tv":       350,
	"paramount_plus": 531,
	"hulu":           15,
	"peacock":        386,
	"crunchyroll":    283,
	"filmin":         63,
	"movistar_plus":  149,
}

// ProviderIDs translates platform codes into TMDB watch-provider ids,
// dropping unknown codes.
func ProviderIDs(codes []string) []int {
	var ids []int
	for _, code := range codes {
		if id, ok := tmdbProviderIDs[code]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// PlatformRepository handles streaming-platform database operations.
type PlatformRepository struct {
	pool *pgxpool.Pool
}

// CreatePlatformParams holds the fields of a new streaming platform.
type CreatePlatformParams struct {
	Code     string
	Name     string
	LogoURL  *string
	IsActive bool
}

// UpdatePlatformParams holds the updatable streaming-platform fields. Nil
// fields are left unchanged.
type UpdatePlatformParams struct {
	Code     *string
	Name     *string
	LogoURL  *string
	IsActive *bool
}

// Create inserts a new streaming platform. Returns ErrConflict if the code is
// already taken.
func (r *PlatformRepository) Create(ctx context.Context, params CreatePlatformParams) (*StreamingPlatform, error) {
	existing, err := r.GetByCode(ctx, params.Code)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("platform with code %q: %w", params.Code, ErrConflict)
	}

	query := `
		INSERT INTO streaming_platforms (id, code, name, logo_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`
	platform := &StreamingPlatform{
		ID:       uuid.New(),
		Code:     params.Code,
		Name:     params.Name,
		LogoURL:  params.LogoURL,
		IsActive: params.IsActive,
	}
	now := time.Now()
	_, err = r.pool.Exec(ctx, query,
		platform.ID,
		platform.Code,
		platform.Name,
		platform.LogoURL,
		platform.IsActive,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting platform: %w", err)
	}
	platform.CreatedAt = now
	platform.UpdatedAt = now
	return platform, nil
}

// List retrieves streaming platforms ordered by name. With activeOnly set,
// inactive platforms are excluded.
func (r *PlatformRepository) List(ctx context.Context, activeOnly bool) ([]StreamingPlatform, error) {
	query := `
		SELECT ` + platformColumns + `
		FROM streaming_platforms
		WHERE NOT $1 OR is_active
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("querying platforms: %w", err)
	}
	defer rows.Close()

	var platforms []StreamingPlatform
	for rows.Next() {
		platform, err := scanPlatform(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning platform: %w", err)
		}
		platforms = append(platforms, *platform)
	}
	return platforms, rows.Err()
}

// Get retrieves a streaming platform by ID.
func (r *PlatformRepository) Get(ctx context.Context, id uuid.UUID) (*StreamingPlatform, error) {
	query := `SELECT ` + platformColumns + ` FROM streaming_platforms WHERE id = $1`
	platform, err := scanPlatform(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("streaming platform %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying platform: %w", err)
	}
	return platform, nil
}

// GetByCode retrieves a streaming platform by its unique code.
func (r *PlatformRepository) GetByCode(ctx context.Context, code string) (*StreamingPlatform, error) {
	query := `SELECT ` + platformColumns + ` FROM streaming_platforms WHERE code = $1`
	platform, err := scanPlatform(r.pool.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying platform: %w", err)
	}
	return platform, nil
}

// Update modifies a streaming platform. Changing the code to one already in
// use returns ErrConflict.
func (r *PlatformRepository) Update(ctx context.Context, id uuid.UUID, params UpdatePlatformParams) (*StreamingPlatform, error) {
	if params.Code != nil {
		existing, err := r.GetByCode(ctx, *params.Code)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("platform with code %q: %w", *params.Code, ErrConflict)
		}
	}

	query := `
		UPDATE streaming_platforms
		SET code = COALESCE($2, code),
		    name = COALESCE($3, name),
		    logo_url = COALESCE($4, logo_url),
		    is_active = COALESCE($5, is_active),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + platformColumns
	platform, err := scanPlatform(r.pool.QueryRow(ctx, query, id, params.Code, params.Name, params.LogoURL, params.IsActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("streaming platform %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating platform: %w", err)
	}
	return platform, nil
}

// Delete removes a streaming platform.
func (r *PlatformRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM streaming_platforms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting platform: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("streaming platform %s: %w", id, ErrNotFound)
	}
	return nil
}

// ToggleActive flips a platform's active flag.
func (r *PlatformRepository) ToggleActive(ctx context.Context, id uuid.UUID) (*StreamingPlatform, error) {
	query := `
		UPDATE streaming_platforms
		SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + platformColumns
	platform, err := scanPlatform(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("streaming platform %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("toggling platform: %w", err)
	}
	return platform, nil
}

func scanPlatform(row rowScanner) (*StreamingPlatform, error) {
	var platform StreamingPlatform
	err := row.Scan(
		&platform.ID,
		&platform.Code,
		&platform.Name,
		&platform.LogoURL,
		&platform.IsActive,
		&platform.CreatedAt,
		&platform.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &platform, nil
}
