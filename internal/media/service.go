// Package media exposes the catalog's metadata to the HTTP layer: recent
// listings, search, and detail lookups for movies, TV shows, seasons,
// episodes and people.
package media

import (
	"context"
	"fmt"

	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// Catalog is the subset of the TMDB client consumed by this service.
type Catalog interface {
	RecentMovies(ctx context.Context, language string) ([]tmdb.MediaItem, error)
	RecentTVShows(ctx context.Context, language string) ([]tmdb.MediaItem, error)
	MovieDetails(ctx context.Context, movieID int, language string) (*tmdb.MovieDetails, error)
	TVDetails(ctx context.Context, tvID int, language string) (*tmdb.TVDetails, error)
	SeasonDetails(ctx context.Context, tvID, seasonNumber int, language string) (*tmdb.SeasonDetails, error)
	EpisodeDetails(ctx context.Context, tvID, seasonNumber, episodeNumber int, language string) (*tmdb.Episode, error)
	PersonDetails(ctx context.Context, personID int, language string) (*tmdb.PersonDetails, error)
	SearchMovies(ctx context.Context, query, language string, page int) (*tmdb.Page, error)
	SearchTVShows(ctx context.Context, query, language string, page int) (*tmdb.Page, error)
	SearchPeople(ctx context.Context, query, language string, page int) (*tmdb.PersonPage, error)
	GenreList(ctx context.Context, mediaType tmdb.MediaType, language string) ([]tmdb.Genre, error)
}

// SearchKind selects which catalog index a search runs against.
type SearchKind string

const (
	SearchMovies SearchKind = "movie"
	SearchTV     SearchKind = "tv"
	SearchPeople SearchKind = "person"
)

// SearchResult holds one search response. Exactly one of Media and People is
// set, depending on the requested kind.
type SearchResult struct {
	Media  *tmdb.Page       `json:"media,omitempty"`
	People *tmdb.PersonPage `json:"people,omitempty"`
}

// Service reshapes catalog metadata for the HTTP layer.
type Service struct {
	catalog         Catalog
	defaultLanguage string
}

// NewService creates a media service. defaultLanguage is applied when the
// caller gives none.
func NewService(catalog Catalog, defaultLanguage string) *Service {
	return &Service{catalog: catalog, defaultLanguage: defaultLanguage}
}

func (s *Service) lang(language string) string {
	if language == "" {
		return s.defaultLanguage
	}
	return language
}

// RecentMovies lists movies released around today.
func (s *Service) RecentMovies(ctx context.Context, language string) ([]tmdb.MediaItem, error) {
	return s.catalog.RecentMovies(ctx, s.lang(language))
}

// RecentTVShows lists TV shows first aired around today.
func (s *Service) RecentTVShows(ctx context.Context, language string) ([]tmdb.MediaItem, error) {
	return s.catalog.RecentTVShows(ctx, s.lang(language))
}

// MovieDetails fetches a movie's full detail record.
func (s *Service) MovieDetails(ctx context.Context, movieID int, language string) (*tmdb.MovieDetails, error) {
	return s.catalog.MovieDetails(ctx, movieID, s.lang(language))
}

// TVDetails fetches a TV show's full detail record.
func (s *Service) TVDetails(ctx context.Context, tvID int, language string) (*tmdb.TVDetails, error) {
	return s.catalog.TVDetails(ctx, tvID, s.lang(language))
}

// SeasonDetails fetches one season of a TV show, episodes included.
func (s *Service) SeasonDetails(ctx context.Context, tvID, seasonNumber int, language string) (*tmdb.SeasonDetails, error) {
	return s.catalog.SeasonDetails(ctx, tvID, seasonNumber, s.lang(language))
}

// EpisodeDetails fetches one episode of a TV show.
func (s *Service) EpisodeDetails(ctx context.Context, tvID, seasonNumber, episodeNumber int, language string) (*tmdb.Episode, error) {
	return s.catalog.EpisodeDetails(ctx, tvID, seasonNumber, episodeNumber, s.lang(language))
}

// PersonDetails fetches a person's full detail record.
func (s *Service) PersonDetails(ctx context.Context, personID int, language string) (*tmdb.PersonDetails, error) {
	return s.catalog.PersonDetails(ctx, personID, s.lang(language))
}

// GenreList returns the catalog's genre reference list for a media type.
func (s *Service) GenreList(ctx context.Context, mediaType tmdb.MediaType, language string) ([]tmdb.Genre, error) {
	return s.catalog.GenreList(ctx, mediaType, s.lang(language))
}

// Search runs a free-text search against the requested catalog index.
func (s *Service) Search(ctx context.Context, kind SearchKind, query, language string, page int) (*SearchResult, error) {
	language = s.lang(language)
	switch kind {
	case SearchMovies:
		media, err := s.catalog.SearchMovies(ctx, query, language, page)
		if err != nil {
			return nil, err
		}
		return &SearchResult{Media: media}, nil
	case SearchTV:
		media, err := s.catalog.SearchTVShows(ctx, query, language, page)
		if err != nil {
			return nil, err
		}
		return &SearchResult{Media: media}, nil
	case SearchPeople:
		people, err := s.catalog.SearchPeople(ctx, query, language, page)
		if err != nil {
			return nil, err
		}
		return &SearchResult{People: people}, nil
	}
	return nil, fmt.Errorf("invalid search kind %q", kind)
}
