package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// MovieDetails fetches the full detail record for a movie.
func (c *Client) MovieDetails(ctx context.Context, movieID int, language string) (*MovieDetails, error) {
	var details MovieDetails
	err := c.get(ctx, "/movie/"+strconv.Itoa(movieID), langParams(language), &details)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching movie %d: %w", movieID, err)
	}
	return &details, nil
}

// TVDetails fetches the full detail record for a TV show.
func (c *Client) TVDetails(ctx context.Context, tvID int, language string) (*TVDetails, error) {
	var details TVDetails
	err := c.get(ctx, "/tv/"+strconv.Itoa(tvID), langParams(language), &details)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("TV show %d: %w", tvID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching TV show %d: %w", tvID, err)
	}
	return &details, nil
}

// SeasonDetails fetches a single season of a TV show, episodes included.
func (c *Client) SeasonDetails(ctx context.Context, tvID, seasonNumber int, language string) (*SeasonDetails, error) {
	path := fmt.Sprintf("/tv/%d/season/%d", tvID, seasonNumber)
	var details SeasonDetails
	err := c.get(ctx, path, langParams(language), &details)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("season %d of TV show %d: %w", seasonNumber, tvID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching season %d of TV show %d: %w", seasonNumber, tvID, err)
	}
	return &details, nil
}

// EpisodeDetails fetches a single episode of a TV show.
func (c *Client) EpisodeDetails(ctx context.Context, tvID, seasonNumber, episodeNumber int, language string) (*Episode, error) {
	path := fmt.Sprintf("/tv/%d/season/%d/episode/%d", tvID, seasonNumber, episodeNumber)
	var episode Episode
	err := c.get(ctx, path, langParams(language), &episode)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("episode %dx%d of TV show %d: %w", seasonNumber, episodeNumber, tvID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching episode %dx%d of TV show %d: %w", seasonNumber, episodeNumber, tvID, err)
	}
	return &episode, nil
}

// PersonDetails fetches the full detail record for a person.
func (c *Client) PersonDetails(ctx context.Context, personID int, language string) (*PersonDetails, error) {
	var details PersonDetails
	err := c.get(ctx, "/person/"+strconv.Itoa(personID), langParams(language), &details)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("person %d: %w", personID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching person %d: %w", personID, err)
	}
	return &details, nil
}

// Genres returns the genre list of a single title. It rides the detail
// endpoint; the caller pays one HTTP request per title.
func (c *Client) Genres(ctx context.Context, mediaID int, mediaType MediaType, language string) ([]Genre, error) {
	if mediaType == MediaTypeMovie {
		details, err := c.MovieDetails(ctx, mediaID, language)
		if err != nil {
			return nil, err
		}
		return details.Genres, nil
	}
	details, err := c.TVDetails(ctx, mediaID, language)
	if err != nil {
		return nil, err
	}
	return details.Genres, nil
}

// GenreList returns the catalog's full genre reference list for a media type.
func (c *Client) GenreList(ctx context.Context, mediaType MediaType, language string) ([]Genre, error) {
	var resp genreListResponse
	if err := c.get(ctx, "/genre/"+string(mediaType)+"/list", langParams(language), &resp); err != nil {
		return nil, fmt.Errorf("fetching %s genre list: %w", mediaType, err)
	}
	return resp.Genres, nil
}

func langParams(language string) url.Values {
	if language == "" {
		return nil
	}
	return url.Values{"language": {language}}
}
