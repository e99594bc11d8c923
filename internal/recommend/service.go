// Package recommend computes personalized media recommendations from stored
// user signals (rating history, declared favorite genres, streaming-platform
// selection) combined with live catalog discovery queries.
package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sofaymanta/sofaymanta-backend/internal/store"
	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// Rating and weighting constants.
const (
	// minHighRating is the whole-title rating threshold above which an
	// interaction counts as genre signal.
	minHighRating = 7

	// favoriteGenreWeight is the tally weight of one declared favorite
	// genre. A favorite counts as three highly-rated titles of that genre:
	// an explicit preference dominates incidental history.
	favoriteGenreWeight = 3

	// maxTopGenres is the number of genres a discovery query is built from.
	maxTopGenres = 2
)

// Catalog is the external metadata provider consumed by the pipeline.
type Catalog interface {
	Discover(ctx context.Context, mediaType tmdb.MediaType, f tmdb.DiscoverFilter) (*tmdb.Page, error)
	Genres(ctx context.Context, mediaID int, mediaType tmdb.MediaType, language string) ([]tmdb.Genre, error)
}

// InteractionStore reads stored user-media interactions.
type InteractionStore interface {
	HighRatedMedia(ctx context.Context, minRating int, mediaType tmdb.MediaType) ([]store.Interaction, error)
	UserRatings(ctx context.Context, userID string, mediaType tmdb.MediaType) ([]store.Interaction, error)
}

// ProfileStore reads stored user preferences.
type ProfileStore interface {
	FavoriteGenres(ctx context.Context, userID string) (*store.FavoriteGenres, error)
	StreamingPlatforms(ctx context.Context, userID string) ([]string, error)
}

// Service drives the recommendation pipeline. It owns no state between calls;
// every request is an independent sequential chain of collaborator fetches.
type Service struct {
	catalog      Catalog
	interactions InteractionStore
	profiles     ProfileStore
	log          zerolog.Logger
}

// NewService creates a new recommendation service.
func NewService(catalog Catalog, interactions InteractionStore, profiles ProfileStore, log zerolog.Logger) *Service {
	return &Service{
		catalog:      catalog,
		interactions: interactions,
		profiles:     profiles,
		log:          log,
	}
}

// Request is one recommendation computation's input.
type Request struct {
	UserID    string
	MediaType tmdb.MediaType
	Language  string
	Page      int
	Limit     int
}

// Recommendations produces at most req.Limit catalog items the user has not
// already rated, ranked by the catalog's ordering for the chosen discovery
// query. With no genre signal at all it falls back to a shuffled pool of
// broadly popular titles.
func (s *Service) Recommendations(ctx context.Context, req Request) ([]tmdb.MediaItem, error) {
	highRated, err := s.interactions.HighRatedMedia(ctx, minHighRating, req.MediaType)
	if err != nil {
		return nil, fmt.Errorf("retrieving recommendations: %w", err)
	}

	// Every candidate list is filtered against the titles the user has
	// already judged, the fallback pool included.
	rated, err := s.interactions.UserRatings(ctx, req.UserID, req.MediaType)
	if err != nil {
		return nil, fmt.Errorf("retrieving recommendations: %w", err)
	}
	excluded := make(map[int]struct{}, len(rated))
	for _, interaction := range rated {
		excluded[interaction.MediaID] = struct{}{}
	}

	favorites, err := s.profiles.FavoriteGenres(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("retrieving recommendations: %w", err)
	}
	favoriteIDs := favorites.MovieGenres
	if req.MediaType == tmdb.MediaTypeTV {
		favoriteIDs = favorites.TVGenres
	}

	topGenres := s.topGenres(ctx, highRated, favoriteIDs, req.MediaType, req.Language)

	// No history and no declared favorites: serve the popular pool and stop.
	if len(topGenres) == 0 {
		pool, err := s.popularFallback(ctx, req.MediaType, req.Language)
		if err != nil {
			return nil, fmt.Errorf("retrieving recommendations: %w", err)
		}
		return truncate(filterExcluded(pool, excluded), req.Limit), nil
	}

	// Platform selection narrows the discovery query; it never excludes
	// already-collected results.
	platformCodes, err := s.profiles.StreamingPlatforms(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("retrieving recommendations: %w", err)
	}

	items, err := s.collectByGenres(ctx, discoverParams{
		mediaType:   req.MediaType,
		genreIDs:    topGenres,
		excluded:    excluded,
		language:    req.Language,
		startPage:   req.Page,
		limit:       req.Limit,
		providerIDs: store.ProviderIDs(platformCodes),
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving recommendations: %w", err)
	}
	return truncate(items, req.Limit), nil
}

// filterExcluded drops items whose id the user has already rated.
func filterExcluded(items []tmdb.MediaItem, excluded map[int]struct{}) []tmdb.MediaItem {
	filtered := items[:0:0]
	for _, item := range items {
		if _, ok := excluded[item.ID]; !ok {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func truncate(items []tmdb.MediaItem, limit int) []tmdb.MediaItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
