package recommend

import (
	"context"
	"math/rand/v2"

	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// Fallback pool constants. The bar is higher and the date floor lower than
// the genre-filtered query: this pool represents broadly popular content.
const (
	fallbackPages = 5

	fallbackMovieMinVoteCount = 1000
	fallbackTVMinVoteCount    = 500

	fallbackDateFloor = "2000-01-01"

	// fallbackPoolSize caps the shuffled pool handed back to the caller.
	fallbackPoolSize = 30
)

// popularFallback returns up to fallbackPoolSize broadly popular titles in
// randomized order. The shuffle keeps repeated fallback calls from always
// surfacing the same head of a vote-sorted list.
func (s *Service) popularFallback(ctx context.Context, mediaType tmdb.MediaType, language string) ([]tmdb.MediaItem, error) {
	minVotes := fallbackMovieMinVoteCount
	if mediaType == tmdb.MediaTypeTV {
		minVotes = fallbackTVMinVoteCount
	}

	var pool []tmdb.MediaItem
	for page := 1; page <= fallbackPages; page++ {
		resp, err := s.catalog.Discover(ctx, mediaType, tmdb.DiscoverFilter{
			Language:     language,
			Page:         page,
			SortBy:       tmdb.SortByVoteAverage,
			MinVoteCount: minVotes,
			ReleasedFrom: fallbackDateFloor,
		})
		if err != nil {
			return nil, err
		}
		pool = append(pool, resp.Results...)
		if resp.Page >= resp.TotalPages {
			break
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > fallbackPoolSize {
		pool = pool[:fallbackPoolSize]
	}
	return pool, nil
}
