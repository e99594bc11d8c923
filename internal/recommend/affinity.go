package recommend

import (
	"context"
	"sort"

	"github.com/sofaymanta/sofaymanta-backend/internal/store"
	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// genreTally accumulates integer scores per genre id. Insertion order is
// preserved so that ties break toward the first-seen genre.
type genreTally struct {
	scores map[int]int
	order  []int
}

func newGenreTally() *genreTally {
	return &genreTally{scores: make(map[int]int)}
}

func (t *genreTally) add(genreID, weight int) {
	if _, seen := t.scores[genreID]; !seen {
		t.order = append(t.order, genreID)
	}
	t.scores[genreID] += weight
}

// top returns the n highest-scored genre ids, best first. Equal scores keep
// insertion order.
func (t *genreTally) top(n int) []int {
	ranked := make([]int, len(t.order))
	copy(ranked, t.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.scores[ranked[i]] > t.scores[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// topGenres scores genres from high-rated interactions and declared
// favorites, returning the user's top inferred genres. Each interaction
// costs one catalog lookup; a failed lookup contributes no weight and never
// aborts the tally.
func (s *Service) topGenres(ctx context.Context, highRated []store.Interaction, favoriteIDs []int, mediaType tmdb.MediaType, language string) []int {
	tally := newGenreTally()

	for _, interaction := range highRated {
		genres, err := s.catalog.Genres(ctx, interaction.MediaID, mediaType, language)
		if err != nil {
			s.log.Debug().
				Err(err).
				Int("media_id", interaction.MediaID).
				Str("media_type", string(mediaType)).
				Msg("genre lookup failed, title contributes no genre weight")
			continue
		}
		for _, genre := range genres {
			tally.add(genre.ID, 1)
		}
	}

	for _, genreID := range favoriteIDs {
		tally.add(genreID, favoriteGenreWeight)
	}

	return tally.top(maxTopGenres)
}
