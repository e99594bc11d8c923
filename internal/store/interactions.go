package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// interactionColumns is the select list shared by all interaction queries.
const interactionColumns = `id, user_id, media_id, media_type, rating, comment,
	season_number, episode_number, created_at, updated_at`

// InteractionRepository handles user-media interaction database operations.
type InteractionRepository struct {
	pool *pgxpool.Pool
}

// CreateInteractionParams holds the caller-supplied fields of a new interaction.
type CreateInteractionParams struct {
	MediaID       int
	MediaType     tmdb.MediaType
	Rating        *int
	Comment       *string
	SeasonNumber  *int
	EpisodeNumber *int
}

// UpdateInteractionParams holds the updatable fields of an interaction.
// Nil fields are left unchanged.
type UpdateInteractionParams struct {
	Rating  *int
	Comment *string
}

// validateEpisodeFields enforces the season/episode shape invariants: movies
// carry neither, and an episode rating requires its season.
func validateEpisodeFields(mediaType tmdb.MediaType, seasonNumber, episodeNumber *int) error {
	if mediaType == tmdb.MediaTypeMovie && (seasonNumber != nil || episodeNumber != nil) {
		return fmt.Errorf("movies cannot have seasons or episodes: %w", ErrInvalidInput)
	}
	if mediaType == tmdb.MediaTypeTV && episodeNumber != nil && seasonNumber == nil {
		return fmt.Errorf("season number is required for episode interactions: %w", ErrInvalidInput)
	}
	return nil
}

// Create inserts a new interaction for a user. Returns ErrConflict if the
// user already has an interaction for the same title/season/episode.
func (r *InteractionRepository) Create(ctx context.Context, userID string, params CreateInteractionParams) (*Interaction, error) {
	if err := validateEpisodeFields(params.MediaType, params.SeasonNumber, params.EpisodeNumber); err != nil {
		return nil, err
	}

	existing, err := r.FindByUserAndMediaDetails(ctx, userID, params.MediaID, params.MediaType, params.SeasonNumber, params.EpisodeNumber)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("interaction for this content: %w", ErrConflict)
	}

	query := `
		INSERT INTO user_media_interactions
			(id, user_id, media_id, media_type, rating, comment, season_number, episode_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`
	interaction := &Interaction{
		ID:            uuid.New(),
		UserID:        userID,
		MediaID:       params.MediaID,
		MediaType:     params.MediaType,
		Rating:        params.Rating,
		Comment:       params.Comment,
		SeasonNumber:  params.SeasonNumber,
		EpisodeNumber: params.EpisodeNumber,
	}
	now := time.Now()
	_, err = r.pool.Exec(ctx, query,
		interaction.ID,
		interaction.UserID,
		interaction.MediaID,
		interaction.MediaType,
		interaction.Rating,
		interaction.Comment,
		interaction.SeasonNumber,
		interaction.EpisodeNumber,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting interaction: %w", err)
	}
	interaction.CreatedAt = now
	interaction.UpdatedAt = now
	return interaction, nil
}

// FindByUserAndMediaDetails looks up a user's interaction for an exact
// title/season/episode combination. Null season/episode match whole-title
// and whole-season interactions respectively.
func (r *InteractionRepository) FindByUserAndMediaDetails(ctx context.Context, userID string, mediaID int, mediaType tmdb.MediaType, seasonNumber, episodeNumber *int) (*Interaction, error) {
	query := `
		SELECT ` + interactionColumns + `
		FROM user_media_interactions
		WHERE user_id = $1 AND media_id = $2 AND media_type = $3
		  AND season_number IS NOT DISTINCT FROM $4
		  AND episode_number IS NOT DISTINCT FROM $5
	`
	interaction, err := scanInteraction(r.pool.QueryRow(ctx, query, userID, mediaID, mediaType, seasonNumber, episodeNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying interaction: %w", err)
	}
	return interaction, nil
}

// ListByUser retrieves all interactions for a user, newest first.
func (r *InteractionRepository) ListByUser(ctx context.Context, userID string) ([]Interaction, error) {
	query := `
		SELECT ` + interactionColumns + `
		FROM user_media_interactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user interactions: %w", err)
	}
	defer rows.Close()
	return scanInteractions(rows)
}

// Update modifies the rating and/or comment of an interaction owned by the
// given user. Returns ErrNotFound if the row does not exist or belongs to
// another user.
func (r *InteractionRepository) Update(ctx context.Context, id uuid.UUID, userID string, params UpdateInteractionParams) (*Interaction, error) {
	query := `
		UPDATE user_media_interactions
		SET rating = COALESCE($3, rating),
		    comment = COALESCE($4, comment),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + interactionColumns
	interaction, err := scanInteraction(r.pool.QueryRow(ctx, query, id, userID, params.Rating, params.Comment))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("interaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating interaction: %w", err)
	}
	return interaction, nil
}

// Delete removes an interaction owned by the given user.
func (r *InteractionRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	query := `DELETE FROM user_media_interactions WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting interaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("interaction %s: %w", id, ErrNotFound)
	}
	return nil
}

// UserRatings retrieves all rated interactions for a user, best first.
// An empty mediaType matches both movies and TV.
func (r *InteractionRepository) UserRatings(ctx context.Context, userID string, mediaType tmdb.MediaType) ([]Interaction, error) {
	query := `
		SELECT ` + interactionColumns + `
		FROM user_media_interactions
		WHERE user_id = $1
		  AND rating IS NOT NULL
		  AND ($2 = '' OR media_type = $2)
		ORDER BY rating DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, string(mediaType))
	if err != nil {
		return nil, fmt.Errorf("querying user ratings: %w", err)
	}
	defer rows.Close()
	return scanInteractions(rows)
}

// HighRatedMedia retrieves whole-title interactions rated at or above
// minRating across all users, best first. Season and episode ratings are
// excluded. An empty mediaType matches both movies and TV.
func (r *InteractionRepository) HighRatedMedia(ctx context.Context, minRating int, mediaType tmdb.MediaType) ([]Interaction, error) {
	query := `
		SELECT ` + interactionColumns + `
		FROM user_media_interactions
		WHERE rating >= $1
		  AND season_number IS NULL
		  AND episode_number IS NULL
		  AND ($2 = '' OR media_type = $2)
		ORDER BY rating DESC
	`
	rows, err := r.pool.Query(ctx, query, minRating, string(mediaType))
	if err != nil {
		return nil, fmt.Errorf("querying high-rated media: %w", err)
	}
	defer rows.Close()
	return scanInteractions(rows)
}

// EpisodeRatings retrieves a user's rated episodes of a TV show, ordered by
// season then episode. A non-nil seasonNumber restricts to that season.
func (r *InteractionRepository) EpisodeRatings(ctx context.Context, userID string, mediaID int, seasonNumber *int) ([]Interaction, error) {
	query := `
		SELECT ` + interactionColumns + `
		FROM user_media_interactions
		WHERE user_id = $1 AND media_id = $2 AND media_type = 'tv'
		  AND episode_number IS NOT NULL
		  AND rating IS NOT NULL
		  AND ($3::int IS NULL OR season_number = $3)
		ORDER BY season_number ASC, episode_number ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, mediaID, seasonNumber)
	if err != nil {
		return nil, fmt.Errorf("querying episode ratings: %w", err)
	}
	defer rows.Close()
	return scanInteractions(rows)
}

// SeasonRatings retrieves a user's rated whole seasons of a TV show.
func (r *InteractionRepository) SeasonRatings(ctx context.Context, userID string, mediaID int) ([]Interaction, error) {
	query := `
		SELECT ` + interactionColumns + `
		FROM user_media_interactions
		WHERE user_id = $1 AND media_id = $2 AND media_type = 'tv'
		  AND season_number IS NOT NULL
		  AND episode_number IS NULL
		  AND rating IS NOT NULL
		ORDER BY season_number ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, mediaID)
	if err != nil {
		return nil, fmt.Errorf("querying season ratings: %w", err)
	}
	defer rows.Close()
	return scanInteractions(rows)
}

// MediaRatings retrieves all users' ratings of a title (or one of its seasons
// or episodes), joined with the rater's username, best first.
func (r *InteractionRepository) MediaRatings(ctx context.Context, mediaID int, mediaType tmdb.MediaType, seasonNumber, episodeNumber *int) ([]MediaRating, error) {
	query := `
		SELECT i.id, i.user_id, i.media_id, i.media_type, i.rating, i.comment,
		       i.season_number, i.episode_number, i.created_at, i.updated_at,
		       p.username
		FROM user_media_interactions i
		LEFT JOIN user_profiles p ON p.id = i.user_id
		WHERE i.media_id = $1 AND i.media_type = $2
		  AND i.rating IS NOT NULL
		  AND i.season_number IS NOT DISTINCT FROM $3
		  AND i.episode_number IS NOT DISTINCT FROM $4
		ORDER BY i.rating DESC
	`
	rows, err := r.pool.Query(ctx, query, mediaID, mediaType, seasonNumber, episodeNumber)
	if err != nil {
		return nil, fmt.Errorf("querying media ratings: %w", err)
	}
	defer rows.Close()

	var ratings []MediaRating
	for rows.Next() {
		var rating MediaRating
		if err := rows.Scan(
			&rating.ID,
			&rating.UserID,
			&rating.MediaID,
			&rating.MediaType,
			&rating.Rating,
			&rating.Comment,
			&rating.SeasonNumber,
			&rating.EpisodeNumber,
			&rating.CreatedAt,
			&rating.UpdatedAt,
			&rating.Username,
		); err != nil {
			return nil, fmt.Errorf("scanning media rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInteraction(row rowScanner) (*Interaction, error) {
	var interaction Interaction
	err := row.Scan(
		&interaction.ID,
		&interaction.UserID,
		&interaction.MediaID,
		&interaction.MediaType,
		&interaction.Rating,
		&interaction.Comment,
		&interaction.SeasonNumber,
		&interaction.EpisodeNumber,
		&interaction.CreatedAt,
		&interaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &interaction, nil
}

func scanInteractions(rows pgx.Rows) ([]Interaction, error) {
	var interactions []Interaction
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		interactions = append(interactions, *interaction)
	}
	return interactions, rows.Err()
}
