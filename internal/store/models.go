package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// Interaction is one user's opinion of a whole title, a season or a single
// episode, disambiguated by which of SeasonNumber/EpisodeNumber are null.
// A movie interaction never carries a season or episode; an episode
// interaction requires the season to be set.
type Interaction struct {
	ID            uuid.UUID      `json:"id"`
	UserID        string         `json:"user_id"`
	MediaID       int            `json:"media_id"`
	MediaType     tmdb.MediaType `json:"media_type"`
	Rating        *int           `json:"rating,omitempty"`
	Comment       *string        `json:"comment,omitempty"`
	SeasonNumber  *int           `json:"season_number,omitempty"`
	EpisodeNumber *int           `json:"episode_number,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// MediaRating is an interaction joined with the rater's public username, as
// shown on a title's community ratings list.
type MediaRating struct {
	Interaction
	Username *string `json:"username"`
}

// Profile is a user profile row. The id matches the auth backend's user id.
type Profile struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Username            *string   `json:"username,omitempty"`
	Role                string    `json:"role"`
	FavoriteMovieGenres []int     `json:"favorite_movie_genres"`
	FavoriteTVGenres    []int     `json:"favorite_tv_genres"`
	StreamingPlatforms  []string  `json:"streaming_platforms"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// FavoriteGenres is a user's declared genre preference, split by media kind.
type FavoriteGenres struct {
	MovieGenres []int `json:"movie_genres"`
	TVGenres    []int `json:"tv_genres"`
}

// StreamingPlatform is a configurable streaming service entry.
type StreamingPlatform struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
