package media

import (
	"context"
	"testing"

	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// mockCatalog implements Catalog, recording the language of the last call.
type mockCatalog struct {
	lastLanguage string
}

func (m *mockCatalog) RecentMovies(ctx context.Context, language string) ([]tmdb.MediaItem, error) {
	m.lastLanguage = language
	return []tmdb.MediaItem{{ID: 1}}, nil
}

func (m *mockCatalog) RecentTVShows(ctx context.Context, language string) ([]tmdb.MediaItem, error) {
	m.lastLanguage = language
	return []tmdb.MediaItem{{ID: 2}}, nil
}

func (m *mockCatalog) MovieDetails(ctx context.Context, movieID int, language string) (*tmdb.MovieDetails, error) {
	m.lastLanguage = language
	return &tmdb.MovieDetails{ID: movieID}, nil
}

func (m *mockCatalog) TVDetails(ctx context.Context, tvID int, language string) (*tmdb.TVDetails, error) {
	m.lastLanguage = language
	return &tmdb.TVDetails{ID: tvID}, nil
}

func (m *mockCatalog) SeasonDetails(ctx context.Context, tvID, seasonNumber int, language string) (*tmdb.SeasonDetails, error) {
	m.lastLanguage = language
	return &tmdb.SeasonDetails{SeasonNumber: seasonNumber}, nil
}

func (m *mockCatalog) EpisodeDetails(ctx context.Context, tvID, seasonNumber, episodeNumber int, language string) (*tmdb.Episode, error) {
	m.lastLanguage = language
	return &tmdb.Episode{EpisodeNumber: episodeNumber}, nil
}

func (m *mockCatalog) PersonDetails(ctx context.Context, personID int, language string) (*tmdb.PersonDetails, error) {
	m.lastLanguage = language
	return &tmdb.PersonDetails{ID: personID}, nil
}

func (m *mockCatalog) SearchMovies(ctx context.Context, query, language string, page int) (*tmdb.Page, error) {
	m.lastLanguage = language
	return &tmdb.Page{Results: []tmdb.MediaItem{{ID: 10, Title: query}}}, nil
}

func (m *mockCatalog) SearchTVShows(ctx context.Context, query, language string, page int) (*tmdb.Page, error) {
	m.lastLanguage = language
	return &tmdb.Page{Results: []tmdb.MediaItem{{ID: 11, Name: query}}}, nil
}

func (m *mockCatalog) SearchPeople(ctx context.Context, query, language string, page int) (*tmdb.PersonPage, error) {
	m.lastLanguage = language
	return &tmdb.PersonPage{Results: []tmdb.Person{{ID: 12, Name: query}}}, nil
}

func (m *mockCatalog) GenreList(ctx context.Context, mediaType tmdb.MediaType, language string) ([]tmdb.Genre, error) {
	m.lastLanguage = language
	return []tmdb.Genre{{ID: 28, Name: "Action"}}, nil
}

func TestService_DefaultLanguage(t *testing.T) {
	catalog := &mockCatalog{}
	svc := NewService(catalog, "es-ES")

	if _, err := svc.RecentMovies(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.lastLanguage != "es-ES" {
		t.Errorf("expected default language es-ES, got %q", catalog.lastLanguage)
	}

	if _, err := svc.MovieDetails(context.Background(), 550, "en-US"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.lastLanguage != "en-US" {
		t.Errorf("expected explicit language en-US, got %q", catalog.lastLanguage)
	}
}

func TestService_Search(t *testing.T) {
	svc := NewService(&mockCatalog{}, "es-ES")

	tests := []struct {
		kind       SearchKind
		wantMedia  bool
		wantPeople bool
	}{
		{SearchMovies, true, false},
		{SearchTV, true, false},
		{SearchPeople, false, true},
	}

	for _, tt := range tests {
		result, err := svc.Search(context.Background(), tt.kind, "matrix", "", 1)
		if err != nil {
			t.Fatalf("Search(%q) unexpected error: %v", tt.kind, err)
		}
		if (result.Media != nil) != tt.wantMedia {
			t.Errorf("Search(%q) media presence = %v, want %v", tt.kind, result.Media != nil, tt.wantMedia)
		}
		if (result.People != nil) != tt.wantPeople {
			t.Errorf("Search(%q) people presence = %v, want %v", tt.kind, result.People != nil, tt.wantPeople)
		}
	}
}

func TestService_SearchInvalidKind(t *testing.T) {
	svc := NewService(&mockCatalog{}, "es-ES")
	if _, err := svc.Search(context.Background(), SearchKind("book"), "dune", "", 1); err == nil {
		t.Fatal("expected error for invalid search kind")
	}
}
