package web

import (
	"net/http"

	"github.com/sofaymanta/sofaymanta-backend/internal/media"
	"github.com/sofaymanta/sofaymanta-backend/internal/recommend"
)

// RecentMovies handles GET /media/movies/recent.
func (h *Handlers) RecentMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.media.RecentMovies(r.Context(), h.lang(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// RecentTVShows handles GET /media/tv/recent.
func (h *Handlers) RecentTVShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.media.RecentTVShows(r.Context(), h.lang(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, shows)
}

// MovieDetails handles GET /media/movies/detail/{id}.
func (h *Handlers) MovieDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	details, err := h.media.MovieDetails(r.Context(), id, h.lang(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// TVDetails handles GET /media/tv/detail/{id}.
func (h *Handlers) TVDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	details, err := h.media.TVDetails(r.Context(), id, h.lang(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// SeasonDetails handles GET /media/tv/{id}/season/{season}.
func (h *Handlers) SeasonDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	season, err := pathInt(r, "season")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	details, err := h.media.SeasonDetails(r.Context(), id, season, h.lang(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// EpisodeDetails handles GET /media/tv/{id}/season/{season}/episode/{episode}.
func (h *Handlers) EpisodeDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	season, err := pathInt(r, "season")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	episode, err := pathInt(r, "episode")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	details, err := h.media.EpisodeDetails(r.Context(), id, season, episode, h.lang(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// PersonDetails handles GET /media/person/{id}.
func (h *Handlers) PersonDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	details, err := h.media.PersonDetails(r.Context(), id, h.lang(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// GenreList handles GET /media/genres.
func (h *Handlers) GenreList(w http.ResponseWriter, r *http.Request) {
	mediaType, err := queryMediaType(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	genres, err := h.media.GenreList(r.Context(), mediaType, h.lang(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, genres)
}

// Search handles GET /media/search.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondErrorMessage(w, http.StatusBadRequest, "query parameter is required")
		return
	}
	kind := media.SearchKind(r.URL.Query().Get("type"))
	switch kind {
	case "":
		kind = media.SearchMovies
	case media.SearchMovies, media.SearchTV, media.SearchPeople:
	default:
		respondErrorMessage(w, http.StatusBadRequest, "type must be movie, tv or person")
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	result, err := h.media.Search(r.Context(), kind, query, h.lang(r), page)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Recommendations handles GET /media/recommendations. userId is required;
// mediaType defaults to movie, page to 1 and limit to 20.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondErrorMessage(w, http.StatusBadRequest, "userId parameter is required")
		return
	}
	mediaType, err := queryMediaType(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if page < 1 || limit < 1 {
		respondErrorMessage(w, http.StatusBadRequest, "page and limit must be positive")
		return
	}

	items, err := h.recommender.Recommendations(r.Context(), recommend.Request{
		UserID:    userID,
		MediaType: mediaType,
		Language:  h.lang(r),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
