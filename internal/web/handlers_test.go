package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sofaymanta/sofaymanta-backend/internal/media"
	"github.com/sofaymanta/sofaymanta-backend/internal/recommend"
	"github.com/sofaymanta/sofaymanta-backend/internal/store"
	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// mockMedia implements mediaService with canned responses.
type mockMedia struct {
	err error
}

func (m *mockMedia) RecentMovies(ctx context.Context, language string) ([]tmdb.MediaItem, error) {
	return []tmdb.MediaItem{{ID: 1, Title: "Recent"}}, m.err
}

func (m *mockMedia) RecentTVShows(ctx context.Context, language string) ([]tmdb.MediaItem, error) {
	return []tmdb.MediaItem{{ID: 2, Name: "Recent Show"}}, m.err
}

func (m *mockMedia) MovieDetails(ctx context.Context, movieID int, language string) (*tmdb.MovieDetails, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &tmdb.MovieDetails{ID: movieID}, nil
}

func (m *mockMedia) TVDetails(ctx context.Context, tvID int, language string) (*tmdb.TVDetails, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &tmdb.TVDetails{ID: tvID}, nil
}

func (m *mockMedia) SeasonDetails(ctx context.Context, tvID, seasonNumber int, language string) (*tmdb.SeasonDetails, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &tmdb.SeasonDetails{SeasonNumber: seasonNumber}, nil
}

func (m *mockMedia) EpisodeDetails(ctx context.Context, tvID, seasonNumber, episodeNumber int, language string) (*tmdb.Episode, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &tmdb.Episode{EpisodeNumber: episodeNumber}, nil
}

func (m *mockMedia) PersonDetails(ctx context.Context, personID int, language string) (*tmdb.PersonDetails, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &tmdb.PersonDetails{ID: personID}, nil
}

func (m *mockMedia) GenreList(ctx context.Context, mediaType tmdb.MediaType, language string) ([]tmdb.Genre, error) {
	return []tmdb.Genre{{ID: 28, Name: "Action"}}, m.err
}

func (m *mockMedia) Search(ctx context.Context, kind media.SearchKind, query, language string, page int) (*media.SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &media.SearchResult{Media: &tmdb.Page{Page: page}}, nil
}

// mockRecommender implements recommender, recording the last request.
type mockRecommender struct {
	lastRequest recommend.Request
	items       []tmdb.MediaItem
	err         error
}

func (m *mockRecommender) Recommendations(ctx context.Context, req recommend.Request) ([]tmdb.MediaItem, error) {
	m.lastRequest = req
	return m.items, m.err
}

// mockInteractionStore implements interactionStore with canned responses.
type mockInteractionStore struct {
	interaction *store.Interaction
	err         error
}

func (m *mockInteractionStore) Create(ctx context.Context, userID string, params store.CreateInteractionParams) (*store.Interaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.Interaction{ID: uuid.New(), UserID: userID, MediaID: params.MediaID, MediaType: params.MediaType}, nil
}

func (m *mockInteractionStore) ListByUser(ctx context.Context, userID string) ([]store.Interaction, error) {
	return nil, m.err
}

func (m *mockInteractionStore) FindByUserAndMediaDetails(ctx context.Context, userID string, mediaID int, mediaType tmdb.MediaType, seasonNumber, episodeNumber *int) (*store.Interaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.interaction, nil
}

func (m *mockInteractionStore) UserRatings(ctx context.Context, userID string, mediaType tmdb.MediaType) ([]store.Interaction, error) {
	return nil, m.err
}

func (m *mockInteractionStore) EpisodeRatings(ctx context.Context, userID string, mediaID int, seasonNumber *int) ([]store.Interaction, error) {
	return nil, m.err
}

func (m *mockInteractionStore) SeasonRatings(ctx context.Context, userID string, mediaID int) ([]store.Interaction, error) {
	return nil, m.err
}

func (m *mockInteractionStore) MediaRatings(ctx context.Context, mediaID int, mediaType tmdb.MediaType, seasonNumber, episodeNumber *int) ([]store.MediaRating, error) {
	return nil, m.err
}

func (m *mockInteractionStore) Update(ctx context.Context, id uuid.UUID, userID string, params store.UpdateInteractionParams) (*store.Interaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.Interaction{ID: id, UserID: userID}, nil
}

func (m *mockInteractionStore) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	return m.err
}

// mockProfileStore implements profileStore with canned responses.
type mockProfileStore struct {
	profile *store.Profile
	err     error
}

func (m *mockProfileStore) Get(ctx context.Context, userID string) (*store.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.profile != nil {
		return m.profile, nil
	}
	return &store.Profile{ID: userID}, nil
}

func (m *mockProfileStore) CreateFromWebhook(ctx context.Context, userID, email string) (*store.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.Profile{ID: userID, Email: email}, nil
}

func (m *mockProfileStore) Update(ctx context.Context, userID string, params store.UpdateProfileParams) (*store.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.Profile{ID: userID}, nil
}

func (m *mockProfileStore) FavoriteGenres(ctx context.Context, userID string) (*store.FavoriteGenres, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.FavoriteGenres{}, nil
}

func (m *mockProfileStore) AddFavoriteGenre(ctx context.Context, userID string, genreID int, mediaType tmdb.MediaType) error {
	return m.err
}

func (m *mockProfileStore) RemoveFavoriteGenre(ctx context.Context, userID string, genreID int, mediaType tmdb.MediaType) error {
	return m.err
}

func (m *mockProfileStore) StreamingPlatforms(ctx context.Context, userID string) ([]string, error) {
	return nil, m.err
}

func (m *mockProfileStore) AddStreamingPlatform(ctx context.Context, userID, code string) error {
	return m.err
}

func (m *mockProfileStore) RemoveStreamingPlatform(ctx context.Context, userID, code string) error {
	return m.err
}

func (m *mockProfileStore) Anonymize(ctx context.Context, userID string) error {
	return m.err
}

func (m *mockProfileStore) ListUsers(ctx context.Context) ([]store.Profile, error) {
	return nil, m.err
}

// mockPlatformStore implements platformStore with canned responses.
type mockPlatformStore struct {
	err error
}

func (m *mockPlatformStore) Create(ctx context.Context, params store.CreatePlatformParams) (*store.StreamingPlatform, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.StreamingPlatform{ID: uuid.New(), Code: params.Code, Name: params.Name, IsActive: params.IsActive}, nil
}

func (m *mockPlatformStore) List(ctx context.Context, activeOnly bool) ([]store.StreamingPlatform, error) {
	return nil, m.err
}

func (m *mockPlatformStore) Get(ctx context.Context, id uuid.UUID) (*store.StreamingPlatform, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.StreamingPlatform{ID: id}, nil
}

func (m *mockPlatformStore) Update(ctx context.Context, id uuid.UUID, params store.UpdatePlatformParams) (*store.StreamingPlatform, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.StreamingPlatform{ID: id}, nil
}

func (m *mockPlatformStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.err
}

func (m *mockPlatformStore) ToggleActive(ctx context.Context, id uuid.UUID) (*store.StreamingPlatform, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.StreamingPlatform{ID: id}, nil
}

type testMocks struct {
	media        *mockMedia
	recommender  *mockRecommender
	interactions *mockInteractionStore
	profiles     *mockProfileStore
	platforms    *mockPlatformStore
}

func newTestServer(t *testing.T) (*Server, *testMocks) {
	t.Helper()
	mocks := &testMocks{
		media:        &mockMedia{},
		recommender:  &mockRecommender{},
		interactions: &mockInteractionStore{},
		profiles:     &mockProfileStore{},
		platforms:    &mockPlatformStore{},
	}
	handlers := NewHandlers(HandlersConfig{
		Media:           mocks.media,
		Recommender:     mocks.recommender,
		Interactions:    mocks.interactions,
		Profiles:        mocks.profiles,
		Platforms:       mocks.platforms,
		Log:             zerolog.Nop(),
		DefaultLanguage: "es-ES",
	})
	server := NewServer(ServerConfig{
		Handlers: handlers,
		Log:      zerolog.Nop(),
	})
	return server, mocks
}

func doRequest(server *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return resp.Error
}

func TestRecommendations_RequiresUserID(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodGet, "/media/recommendations", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorBody(t, rec); got != "userId parameter is required" {
		t.Errorf("error = %q", got)
	}
}

func TestRecommendations_Defaults(t *testing.T) {
	server, mocks := newTestServer(t)

	rec := doRequest(server, http.MethodGet, "/media/recommendations?userId=u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	req := mocks.recommender.lastRequest
	if req.UserID != "u1" {
		t.Errorf("userID = %q, want u1", req.UserID)
	}
	if req.MediaType != tmdb.MediaTypeMovie {
		t.Errorf("mediaType = %q, want movie", req.MediaType)
	}
	if req.Page != 1 || req.Limit != 20 {
		t.Errorf("page/limit = %d/%d, want 1/20", req.Page, req.Limit)
	}
	if req.Language != "es-ES" {
		t.Errorf("language = %q, want default es-ES", req.Language)
	}
}

func TestRecommendations_ParameterValidation(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name  string
		query string
	}{
		{"invalid media type", "userId=u1&mediaType=book"},
		{"zero page", "userId=u1&page=0"},
		{"negative limit", "userId=u1&limit=-5"},
		{"non-numeric page", "userId=u1&page=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(server, http.MethodGet, "/media/recommendations?"+tt.query, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRecommendations_EmptyResultIsOK(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodGet, "/media/recommendations?userId=u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodGet, "/media/search", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorBody(t, rec); got != "query parameter is required" {
		t.Errorf("error = %q", got)
	}
}

func TestSearch_InvalidType(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodGet, "/media/search?query=dune&type=book", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMediaRoutes_OK(t *testing.T) {
	server, _ := newTestServer(t)

	paths := []string{
		"/media/movies/recent",
		"/media/tv/recent",
		"/media/movies/detail/550",
		"/media/tv/detail/1399",
		"/media/tv/1399/season/1",
		"/media/tv/1399/season/1/episode/1",
		"/media/person/287",
		"/media/genres",
		"/media/search?query=matrix",
	}
	for _, path := range paths {
		rec := doRequest(server, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestMovieDetails_InvalidID(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodGet, "/media/movies/detail/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"catalog not found", fmt.Errorf("movie 1: %w", tmdb.ErrNotFound), http.StatusNotFound},
		{"store not found", fmt.Errorf("profile: %w", store.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("duplicate: %w", store.ErrConflict), http.StatusConflict},
		{"forbidden", fmt.Errorf("role: %w", store.ErrForbidden), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, mocks := newTestServer(t)
			mocks.media.err = tt.err

			rec := doRequest(server, http.MethodGet, "/media/movies/detail/550", "")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusInternalServerError {
				if got := errorBody(t, rec); got != "internal server error" {
					t.Errorf("internal errors must not leak, got %q", got)
				}
			}
		})
	}
}

func TestCreateInteraction(t *testing.T) {
	server, _ := newTestServer(t)

	body := `{"media_id": 550, "media_type": "movie", "rating": 8}`
	rec := doRequest(server, http.MethodPost, "/interactions/u1", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateInteraction_InvalidBody(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing media id", `{"media_type": "movie"}`},
		{"bad media type", `{"media_id": 550, "media_type": "book"}`},
		{"rating out of range", `{"media_id": 550, "media_type": "movie", "rating": 11}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(server, http.MethodPost, "/interactions/u1", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateInteraction_ShapeRejected(t *testing.T) {
	server, mocks := newTestServer(t)
	mocks.interactions.err = fmt.Errorf("movies cannot have seasons or episodes: %w", store.ErrInvalidInput)

	body := `{"media_id": 550, "media_type": "movie", "season_number": 1}`
	rec := doRequest(server, http.MethodPost, "/interactions/u1", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if got := errorBody(t, rec); !strings.Contains(got, "movies cannot have seasons or episodes") {
		t.Errorf("error = %q, want shape violation message", got)
	}
}

func TestCreateInteraction_Conflict(t *testing.T) {
	server, mocks := newTestServer(t)
	mocks.interactions.err = fmt.Errorf("interaction for this content: %w", store.ErrConflict)

	body := `{"media_id": 550, "media_type": "movie", "rating": 8}`
	rec := doRequest(server, http.MethodPost, "/interactions/u1", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestUpdateInteraction_InvalidUUID(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodPatch, "/interactions/u1/not-a-uuid", `{"rating": 9}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUserWebhook(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodPost, "/users/webhook", `{"id": "u1", "email": "u1@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(server, http.MethodPost, "/users/webhook", `{"id": "u1", "email": "not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteAccount_WithoutAuthClient(t *testing.T) {
	// No admin auth client configured: anonymization alone must succeed.
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodDelete, "/users/profile/u1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestDeleteAccount_Forbidden(t *testing.T) {
	server, mocks := newTestServer(t)
	mocks.profiles.err = fmt.Errorf("account already deleted: %w", store.ErrForbidden)

	rec := doRequest(server, http.MethodDelete, "/users/profile/u1", "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCreatePlatform_Validation(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodPost, "/platforms", `{"code": "netflix", "name": "Netflix"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	// Codes are lowercase identifiers.
	rec = doRequest(server, http.MethodPost, "/platforms", `{"code": "NETFLIX", "name": "Netflix"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAddFavoriteGenre_Validation(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(server, http.MethodPut, "/users/profile/u1/genres", `{"genre_id": 28, "media_type": "movie"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(server, http.MethodPut, "/users/profile/u1/genres", `{"genre_id": 28, "media_type": "book"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFindInteraction_RequiresMediaID(t *testing.T) {
	server, mocks := newTestServer(t)
	mocks.interactions.interaction = &store.Interaction{MediaID: 550}

	rec := doRequest(server, http.MethodGet, "/interactions/u1/media", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doRequest(server, http.MethodGet, "/interactions/u1/media?mediaId=550&mediaType=movie", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}
