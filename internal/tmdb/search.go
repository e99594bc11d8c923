package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchMovies searches movies by free-text query.
func (c *Client) SearchMovies(ctx context.Context, query, language string, page int) (*Page, error) {
	var result Page
	if err := c.get(ctx, "/search/movie", searchParams(query, language, page), &result); err != nil {
		return nil, fmt.Errorf("searching movies: %w", err)
	}
	return &result, nil
}

// SearchTVShows searches TV shows by free-text query.
func (c *Client) SearchTVShows(ctx context.Context, query, language string, page int) (*Page, error) {
	var result Page
	if err := c.get(ctx, "/search/tv", searchParams(query, language, page), &result); err != nil {
		return nil, fmt.Errorf("searching TV shows: %w", err)
	}
	return &result, nil
}

// SearchPeople searches people by free-text query.
func (c *Client) SearchPeople(ctx context.Context, query, language string, page int) (*PersonPage, error) {
	var result PersonPage
	if err := c.get(ctx, "/search/person", searchParams(query, language, page), &result); err != nil {
		return nil, fmt.Errorf("searching people: %w", err)
	}
	return &result, nil
}

func searchParams(query, language string, page int) url.Values {
	params := url.Values{
		"query":         {query},
		"include_adult": {"false"},
	}
	if language != "" {
		params.Set("language", language)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}
