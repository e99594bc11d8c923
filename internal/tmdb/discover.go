package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SortByVoteAverage and SortByPopularity are the sort keys used by this
// application's discovery queries.
const (
	SortByVoteAverage = "vote_average.desc"
	SortByPopularity  = "popularity.desc"
)

// recentWindowDays is the half-width of the release window used by the
// recent-releases listings.
const recentWindowDays = 30

// DiscoverFilter holds the query constraints for a discovery listing.
// Zero-valued fields are omitted from the query.
type DiscoverFilter struct {
	Language     string
	Page         int
	SortBy       string
	MinVoteCount int
	ReleasedFrom string // YYYY-MM-DD, inclusive lower bound on release/air date
	GenreIDs     []int
	ProviderIDs  []int // TMDB watch-provider ids, matched as logical OR
	WatchRegion  string
}

// Discover issues a filtered, sorted, paginated listing request. Adult
// content is always excluded.
func (c *Client) Discover(ctx context.Context, mediaType MediaType, f DiscoverFilter) (*Page, error) {
	params := url.Values{
		"include_adult": {"false"},
	}
	if f.Language != "" {
		params.Set("language", f.Language)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.SortBy != "" {
		params.Set("sort_by", f.SortBy)
	}
	if f.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(f.MinVoteCount))
	}
	if f.ReleasedFrom != "" {
		if mediaType == MediaTypeMovie {
			params.Set("primary_release_date.gte", f.ReleasedFrom)
		} else {
			params.Set("first_air_date.gte", f.ReleasedFrom)
		}
	}
	if len(f.GenreIDs) > 0 {
		params.Set("with_genres", joinInts(f.GenreIDs, ","))
	}
	if len(f.ProviderIDs) > 0 {
		params.Set("with_watch_providers", joinInts(f.ProviderIDs, "|"))
		if f.WatchRegion != "" {
			params.Set("watch_region", f.WatchRegion)
		}
	}

	var page Page
	if err := c.get(ctx, "/discover/"+string(mediaType), params, &page); err != nil {
		return nil, fmt.Errorf("discovering %s: %w", mediaType, err)
	}
	return &page, nil
}

// RecentMovies lists movies released in theaters or digitally within a window
// around today, most popular first.
func (c *Client) RecentMovies(ctx context.Context, language string) ([]MediaItem, error) {
	params := url.Values{
		"include_adult":     {"false"},
		"include_video":     {"false"},
		"language":          {language},
		"page":              {"1"},
		"sort_by":           {SortByPopularity},
		"with_release_type": {"2|3"},
		"release_date.gte":  {dateOffset(-recentWindowDays)},
		"release_date.lte":  {dateOffset(recentWindowDays)},
	}

	var page Page
	if err := c.get(ctx, "/discover/movie", params, &page); err != nil {
		return nil, fmt.Errorf("fetching recent movies: %w", err)
	}
	return page.Results, nil
}

// RecentTVShows lists TV shows that first aired within a window around today,
// most popular first.
func (c *Client) RecentTVShows(ctx context.Context, language string) ([]MediaItem, error) {
	params := url.Values{
		"include_adult":      {"false"},
		"language":           {language},
		"page":               {"1"},
		"sort_by":            {SortByPopularity},
		"first_air_date.gte": {dateOffset(-recentWindowDays)},
		"first_air_date.lte": {dateOffset(recentWindowDays)},
	}

	var page Page
	if err := c.get(ctx, "/discover/tv", params, &page); err != nil {
		return nil, fmt.Errorf("fetching recent TV shows: %w", err)
	}
	return page.Results, nil
}

// dateOffset returns the date daysOffset days from today in YYYY-MM-DD form.
func dateOffset(daysOffset int) string {
	return time.Now().AddDate(0, 0, daysOffset).Format("2006-01-02")
}

// joinInts joins ints with the given separator.
func joinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
