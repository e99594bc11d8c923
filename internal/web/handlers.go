package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sofaymanta/sofaymanta-backend/internal/media"
	"github.com/sofaymanta/sofaymanta-backend/internal/recommend"
	"github.com/sofaymanta/sofaymanta-backend/internal/store"
	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// mediaService is the metadata surface consumed by the media handlers.
type mediaService interface {
	RecentMovies(ctx context.Context, language string) ([]tmdb.MediaItem, error)
	RecentTVShows(ctx context.Context, language string) ([]tmdb.MediaItem, error)
	MovieDetails(ctx context.Context, movieID int, language string) (*tmdb.MovieDetails, error)
	TVDetails(ctx context.Context, tvID int, language string) (*tmdb.TVDetails, error)
	SeasonDetails(ctx context.Context, tvID, seasonNumber int, language string) (*tmdb.SeasonDetails, error)
	EpisodeDetails(ctx context.Context, tvID, seasonNumber, episodeNumber int, language string) (*tmdb.Episode, error)
	PersonDetails(ctx context.Context, personID int, language string) (*tmdb.PersonDetails, error)
	GenreList(ctx context.Context, mediaType tmdb.MediaType, language string) ([]tmdb.Genre, error)
	Search(ctx context.Context, kind media.SearchKind, query, language string, page int) (*media.SearchResult, error)
}

// recommender computes personalized recommendation lists.
type recommender interface {
	Recommendations(ctx context.Context, req recommend.Request) ([]tmdb.MediaItem, error)
}

// interactionStore is the interaction persistence surface consumed by handlers.
type interactionStore interface {
	Create(ctx context.Context, userID string, params store.CreateInteractionParams) (*store.Interaction, error)
	ListByUser(ctx context.Context, userID string) ([]store.Interaction, error)
	FindByUserAndMediaDetails(ctx context.Context, userID string, mediaID int, mediaType tmdb.MediaType, seasonNumber, episodeNumber *int) (*store.Interaction, error)
	UserRatings(ctx context.Context, userID string, mediaType tmdb.MediaType) ([]store.Interaction, error)
	EpisodeRatings(ctx context.Context, userID string, mediaID int, seasonNumber *int) ([]store.Interaction, error)
	SeasonRatings(ctx context.Context, userID string, mediaID int) ([]store.Interaction, error)
	MediaRatings(ctx context.Context, mediaID int, mediaType tmdb.MediaType, seasonNumber, episodeNumber *int) ([]store.MediaRating, error)
	Update(ctx context.Context, id uuid.UUID, userID string, params store.UpdateInteractionParams) (*store.Interaction, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

// profileStore is the profile persistence surface consumed by handlers.
type profileStore interface {
	Get(ctx context.Context, userID string) (*store.Profile, error)
	CreateFromWebhook(ctx context.Context, userID, email string) (*store.Profile, error)
	Update(ctx context.Context, userID string, params store.UpdateProfileParams) (*store.Profile, error)
	FavoriteGenres(ctx context.Context, userID string) (*store.FavoriteGenres, error)
	AddFavoriteGenre(ctx context.Context, userID string, genreID int, mediaType tmdb.MediaType) error
	RemoveFavoriteGenre(ctx context.Context, userID string, genreID int, mediaType tmdb.MediaType) error
	StreamingPlatforms(ctx context.Context, userID string) ([]string, error)
	AddStreamingPlatform(ctx context.Context, userID, code string) error
	RemoveStreamingPlatform(ctx context.Context, userID, code string) error
	Anonymize(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]store.Profile, error)
}

// platformStore is the streaming-platform persistence surface consumed by handlers.
type platformStore interface {
	Create(ctx context.Context, params store.CreatePlatformParams) (*store.StreamingPlatform, error)
	List(ctx context.Context, activeOnly bool) ([]store.StreamingPlatform, error)
	Get(ctx context.Context, id uuid.UUID) (*store.StreamingPlatform, error)
	Update(ctx context.Context, id uuid.UUID, params store.UpdatePlatformParams) (*store.StreamingPlatform, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleActive(ctx context.Context, id uuid.UUID) (*store.StreamingPlatform, error)
}

// authDeleter removes a user from the external auth backend.
type authDeleter interface {
	DeleteUser(ctx context.Context, userID string) error
}

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	media        mediaService
	recommender  recommender
	interactions interactionStore
	profiles     profileStore
	platforms    platformStore
	auth         authDeleter // nil when no admin auth client is configured
	validate     *validator.Validate
	log          zerolog.Logger
	defaultLang  string
}

// HandlersConfig wires collaborator services into a Handlers instance.
type HandlersConfig struct {
	Media           mediaService
	Recommender     recommender
	Interactions    interactionStore
	Profiles        profileStore
	Platforms       platformStore
	Auth            authDeleter
	Log             zerolog.Logger
	DefaultLanguage string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg HandlersConfig) *Handlers {
	return &Handlers{
		media:        cfg.Media,
		recommender:  cfg.Recommender,
		interactions: cfg.Interactions,
		profiles:     cfg.Profiles,
		platforms:    cfg.Platforms,
		auth:         cfg.Auth,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		log:          cfg.Log,
		defaultLang:  cfg.DefaultLanguage,
	}
}

// lang returns the lang query parameter or the configured default.
func (h *Handlers) lang(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return h.defaultLang
}

// pathInt parses a numeric chi URL parameter.
func pathInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, errBadRequest("invalid " + name + " parameter")
	}
	return value, nil
}

// pathUUID parses a UUID chi URL parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	value, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errBadRequest("invalid " + name + " parameter")
	}
	return value, nil
}

// queryInt parses an optional numeric query parameter, returning fallback
// when absent.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadRequest("invalid " + name + " parameter")
	}
	return value, nil
}

// queryOptionalInt parses an optional numeric query parameter, returning nil
// when absent.
func queryOptionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errBadRequest("invalid " + name + " parameter")
	}
	return &value, nil
}

// queryMediaType parses the mediaType query parameter, defaulting to movie.
func queryMediaType(r *http.Request) (tmdb.MediaType, error) {
	raw := r.URL.Query().Get("mediaType")
	if raw == "" {
		return tmdb.MediaTypeMovie, nil
	}
	mediaType, err := tmdb.ParseMediaType(raw)
	if err != nil {
		return "", errBadRequest("mediaType must be movie or tv")
	}
	return mediaType, nil
}

// pathMediaType parses the {type} chi URL parameter.
func pathMediaType(r *http.Request) (tmdb.MediaType, error) {
	mediaType, err := tmdb.ParseMediaType(chi.URLParam(r, "type"))
	if err != nil {
		return "", errBadRequest("type must be movie or tv")
	}
	return mediaType, nil
}
