package recommend

import (
	"context"

	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// Discovery query constants.
const (
	// pageSize is the catalog's fixed page size. The page budget is derived
	// from it; a provider with a different page size only needs this change.
	pageSize = 20

	// extraPages absorbs expected losses from exclusion filtering.
	extraPages = 2

	// Genre-filtered results are a smaller pool than the generic popular
	// query, so the vote-count bar sits lower.
	movieMinVoteCount = 500
	tvMinVoteCount    = 300

	discoverDateFloor = "2010-01-01"

	// watchRegion scopes the provider filter.
	watchRegion = "ES"
)

type discoverParams struct {
	mediaType   tmdb.MediaType
	genreIDs    []int
	excluded    map[int]struct{}
	language    string
	startPage   int
	limit       int
	providerIDs []int
}

// collectByGenres issues discovery requests page by page, filtering each
// page's results against the exclusion set, until the target count is
// reached, the catalog reports no further pages, or the page budget runs
// out. Any page failure aborts the whole collection.
func (s *Service) collectByGenres(ctx context.Context, p discoverParams) ([]tmdb.MediaItem, error) {
	maxPages := (p.limit+pageSize-1)/pageSize + extraPages

	minVotes := movieMinVoteCount
	if p.mediaType == tmdb.MediaTypeTV {
		minVotes = tvMinVoteCount
	}

	var collected []tmdb.MediaItem
	page := p.startPage
	for fetched := 0; fetched < maxPages; fetched++ {
		resp, err := s.catalog.Discover(ctx, p.mediaType, tmdb.DiscoverFilter{
			Language:     p.language,
			Page:         page,
			SortBy:       tmdb.SortByVoteAverage,
			MinVoteCount: minVotes,
			ReleasedFrom: discoverDateFloor,
			GenreIDs:     p.genreIDs,
			ProviderIDs:  p.providerIDs,
			WatchRegion:  watchRegion,
		})
		if err != nil {
			return nil, err
		}

		collected = append(collected, filterExcluded(resp.Results, p.excluded)...)

		if len(collected) >= p.limit || resp.Page >= resp.TotalPages {
			break
		}
		page++
	}
	return collected, nil
}
