package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sofaymanta/sofaymanta-backend/internal/store"
	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// CreateInteraction handles POST /interactions/{userId}.
func (h *Handlers) CreateInteraction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req createInteractionRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	interaction, err := h.interactions.Create(r.Context(), userID, store.CreateInteractionParams{
		MediaID:       req.MediaID,
		MediaType:     tmdb.MediaType(req.MediaType),
		Rating:        req.Rating,
		Comment:       req.Comment,
		SeasonNumber:  req.SeasonNumber,
		EpisodeNumber: req.EpisodeNumber,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, interaction)
}

// ListInteractions handles GET /interactions/{userId}.
func (h *Handlers) ListInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.interactions.ListByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if interactions == nil {
		interactions = []store.Interaction{}
	}
	respondJSON(w, http.StatusOK, interactions)
}

// FindInteraction handles GET /interactions/{userId}/media. It looks up the
// user's interaction for an exact title/season/episode combination.
func (h *Handlers) FindInteraction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	mediaID, err := queryInt(r, "mediaId", 0)
	if err != nil || mediaID == 0 {
		respondErrorMessage(w, http.StatusBadRequest, "mediaId parameter is required")
		return
	}
	mediaType, err := queryMediaType(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	season, err := queryOptionalInt(r, "seasonNumber")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	episode, err := queryOptionalInt(r, "episodeNumber")
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	interaction, err := h.interactions.FindByUserAndMediaDetails(r.Context(), userID, mediaID, mediaType, season, episode)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, interaction)
}

// UserRatings handles GET /interactions/{userId}/ratings.
func (h *Handlers) UserRatings(w http.ResponseWriter, r *http.Request) {
	var mediaType tmdb.MediaType
	if raw := r.URL.Query().Get("mediaType"); raw != "" {
		parsed, err := tmdb.ParseMediaType(raw)
		if err != nil {
			respondErrorMessage(w, http.StatusBadRequest, "mediaType must be movie or tv")
			return
		}
		mediaType = parsed
	}

	ratings, err := h.interactions.UserRatings(r.Context(), chi.URLParam(r, "userId"), mediaType)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if ratings == nil {
		ratings = []store.Interaction{}
	}
	respondJSON(w, http.StatusOK, ratings)
}

// EpisodeRatings handles GET /interactions/{userId}/tv/{id}/episodes.
func (h *Handlers) EpisodeRatings(w http.ResponseWriter, r *http.Request) {
	mediaID, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	season, err := queryOptionalInt(r, "seasonNumber")
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	ratings, err := h.interactions.EpisodeRatings(r.Context(), chi.URLParam(r, "userId"), mediaID, season)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if ratings == nil {
		ratings = []store.Interaction{}
	}
	respondJSON(w, http.StatusOK, ratings)
}

// SeasonRatings handles GET /interactions/{userId}/tv/{id}/seasons.
func (h *Handlers) SeasonRatings(w http.ResponseWriter, r *http.Request) {
	mediaID, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	ratings, err := h.interactions.SeasonRatings(r.Context(), chi.URLParam(r, "userId"), mediaID)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if ratings == nil {
		ratings = []store.Interaction{}
	}
	respondJSON(w, http.StatusOK, ratings)
}

// MediaRatings handles GET /media/{type}/{id}/ratings: every user's rating of
// one title, season or episode.
func (h *Handlers) MediaRatings(w http.ResponseWriter, r *http.Request) {
	mediaType, err := pathMediaType(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	mediaID, err := pathInt(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	season, err := queryOptionalInt(r, "seasonNumber")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	episode, err := queryOptionalInt(r, "episodeNumber")
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	ratings, err := h.interactions.MediaRatings(r.Context(), mediaID, mediaType, season, episode)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if ratings == nil {
		ratings = []store.MediaRating{}
	}
	respondJSON(w, http.StatusOK, ratings)
}

// UpdateInteraction handles PATCH /interactions/{userId}/{id}.
func (h *Handlers) UpdateInteraction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	var req updateInteractionRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	interaction, err := h.interactions.Update(r.Context(), id, chi.URLParam(r, "userId"), store.UpdateInteractionParams{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, interaction)
}

// DeleteInteraction handles DELETE /interactions/{userId}/{id}.
func (h *Handlers) DeleteInteraction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if err := h.interactions.Delete(r.Context(), id, chi.URLParam(r, "userId")); err != nil {
		respondError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
