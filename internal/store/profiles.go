package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// Profile roles.
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleDeleted = "deleted"
)

const profileColumns = `id, email, username, role, favorite_movie_genres,
	favorite_tv_genres, streaming_platforms, created_at, updated_at`

// ProfileRepository handles user profile database operations.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// UpdateProfileParams holds the updatable profile fields. Nil fields are left
// unchanged.
type UpdateProfileParams struct {
	Username *string
	Email    *string
	Role     *string
}

// Get retrieves a profile by user ID.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE id = $1`
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user profile %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return profile, nil
}

// CreateFromWebhook creates a profile for a newly signed-up user. The call is
// idempotent: if the profile already exists it is returned unchanged.
func (r *ProfileRepository) CreateFromWebhook(ctx context.Context, userID, email string) (*Profile, error) {
	existing, err := r.Get(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO user_profiles (id, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`
	now := time.Now()
	if _, err := r.pool.Exec(ctx, query, userID, email, RoleUser, now); err != nil {
		return nil, fmt.Errorf("inserting profile: %w", err)
	}
	return &Profile{
		ID:        userID,
		Email:     email,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update modifies a profile's basic fields.
func (r *ProfileRepository) Update(ctx context.Context, userID string, params UpdateProfileParams) (*Profile, error) {
	query := `
		UPDATE user_profiles
		SET username = COALESCE($2, username),
		    email = COALESCE($3, email),
		    role = COALESCE($4, role),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, userID, params.Username, params.Email, params.Role))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user profile %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}

// FavoriteGenres returns a user's declared favorite genres for both media kinds.
func (r *ProfileRepository) FavoriteGenres(ctx context.Context, userID string) (*FavoriteGenres, error) {
	profile, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FavoriteGenres{
		MovieGenres: emptyIfNil(profile.FavoriteMovieGenres),
		TVGenres:    emptyIfNil(profile.FavoriteTVGenres),
	}, nil
}

// AddFavoriteGenre adds a genre to a user's favorites for the given media
// kind. Adding an already-present genre is a no-op.
func (r *ProfileRepository) AddFavoriteGenre(ctx context.Context, userID string, genreID int, mediaType tmdb.MediaType) error {
	profile, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	genres := profile.FavoriteMovieGenres
	if mediaType == tmdb.MediaTypeTV {
		genres = profile.FavoriteTVGenres
	}
	if slices.Contains(genres, genreID) {
		return nil
	}
	return r.setFavoriteGenres(ctx, userID, mediaType, append(genres, genreID))
}

// RemoveFavoriteGenre removes a genre from a user's favorites for the given
// media kind. Removing an absent genre is a no-op.
func (r *ProfileRepository) RemoveFavoriteGenre(ctx context.Context, userID string, genreID int, mediaType tmdb.MediaType) error {
	profile, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	genres := profile.FavoriteMovieGenres
	if mediaType == tmdb.MediaTypeTV {
		genres = profile.FavoriteTVGenres
	}
	updated := slices.DeleteFunc(slices.Clone(genres), func(id int) bool { return id == genreID })
	return r.setFavoriteGenres(ctx, userID, mediaType, updated)
}

func (r *ProfileRepository) setFavoriteGenres(ctx context.Context, userID string, mediaType tmdb.MediaType, genres []int) error {
	column := "favorite_movie_genres"
	if mediaType == tmdb.MediaTypeTV {
		column = "favorite_tv_genres"
	}
	query := `UPDATE user_profiles SET ` + column + ` = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, userID, emptyIfNil(genres)); err != nil {
		return fmt.Errorf("updating favorite genres: %w", err)
	}
	return nil
}

// StreamingPlatforms returns a user's selected streaming-platform codes.
func (r *ProfileRepository) StreamingPlatforms(ctx context.Context, userID string) ([]string, error) {
	profile, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.StreamingPlatforms == nil {
		return []string{}, nil
	}
	return profile.StreamingPlatforms, nil
}

// AddStreamingPlatform adds a platform code to a user's selection.
func (r *ProfileRepository) AddStreamingPlatform(ctx context.Context, userID, code string) error {
	profile, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if slices.Contains(profile.StreamingPlatforms, code) {
		return nil
	}
	return r.setStreamingPlatforms(ctx, userID, append(profile.StreamingPlatforms, code))
}

// RemoveStreamingPlatform removes a platform code from a user's selection.
func (r *ProfileRepository) RemoveStreamingPlatform(ctx context.Context, userID, code string) error {
	profile, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	updated := slices.DeleteFunc(slices.Clone(profile.StreamingPlatforms), func(c string) bool { return c == code })
	return r.setStreamingPlatforms(ctx, userID, updated)
}

func (r *ProfileRepository) setStreamingPlatforms(ctx context.Context, userID string, codes []string) error {
	if codes == nil {
		codes = []string{}
	}
	query := `UPDATE user_profiles SET streaming_platforms = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, userID, codes); err != nil {
		return fmt.Errorf("updating streaming platforms: %w", err)
	}
	return nil
}

// Anonymize scrubs a profile's identifying fields ahead of account deletion.
// Only profiles with the plain user role may be deleted; admin accounts
// return ErrForbidden.
func (r *ProfileRepository) Anonymize(ctx context.Context, userID string) error {
	profile, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if profile.Role != RoleUser {
		return fmt.Errorf("only accounts with the user role can be deleted: %w", ErrForbidden)
	}

	anonymous := "deleted_user_" + strconv.FormatInt(time.Now().Unix(), 36)
	empty := ""
	deleted := RoleDeleted
	_, err = r.Update(ctx, userID, UpdateProfileParams{
		Username: &anonymous,
		Email:    &empty,
		Role:     &deleted,
	})
	return err
}

// ListUsers retrieves all active user profiles, newest first.
func (r *ProfileRepository) ListUsers(ctx context.Context) ([]Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM user_profiles
		WHERE role = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, RoleUser)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func scanProfile(row rowScanner) (*Profile, error) {
	var profile Profile
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.Username,
		&profile.Role,
		&profile.FavoriteMovieGenres,
		&profile.FavoriteTVGenres,
		&profile.StreamingPlatforms,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func emptyIfNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
