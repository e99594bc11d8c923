package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sofaymanta/sofaymanta-backend/internal/store"
	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// UserWebhook handles POST /users/webhook: profile creation triggered by the
// auth backend on signup. The call is idempotent.
func (h *Handlers) UserWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookUserRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	profile, err := h.profiles.CreateFromWebhook(r.Context(), req.ID, req.Email)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	h.log.Info().Str("user_id", profile.ID).Msg("user profile created")
	respondJSON(w, http.StatusCreated, profile)
}

// GetProfile handles GET /users/profile/{id}.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PATCH /users/profile/{id}.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	profile, err := h.profiles.Update(r.Context(), chi.URLParam(r, "id"), store.UpdateProfileParams{
		Username: req.Username,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// DeleteAccount handles DELETE /users/profile/{id}: the profile is
// anonymized, then the user is removed from the auth backend.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.profiles.Anonymize(r.Context(), userID); err != nil {
		respondError(w, h.log, err)
		return
	}

	if h.auth == nil {
		h.log.Warn().Str("user_id", userID).Msg("no admin auth client configured, auth user not deleted")
	} else if err := h.auth.DeleteUser(r.Context(), userID); err != nil {
		respondError(w, h.log, err)
		return
	}

	h.log.Info().Str("user_id", userID).Msg("user account deleted")
	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /users.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.ListUsers(r.Context())
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if profiles == nil {
		profiles = []store.Profile{}
	}
	respondJSON(w, http.StatusOK, profiles)
}

// FavoriteGenres handles GET /users/profile/{id}/genres.
func (h *Handlers) FavoriteGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.profiles.FavoriteGenres(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, genres)
}

// AddFavoriteGenre handles PUT /users/profile/{id}/genres.
func (h *Handlers) AddFavoriteGenre(w http.ResponseWriter, r *http.Request) {
	var req favoriteGenreRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	err := h.profiles.AddFavoriteGenre(r.Context(), chi.URLParam(r, "id"), req.GenreID, tmdb.MediaType(req.MediaType))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavoriteGenre handles DELETE /users/profile/{id}/genres.
func (h *Handlers) RemoveFavoriteGenre(w http.ResponseWriter, r *http.Request) {
	var req favoriteGenreRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	err := h.profiles.RemoveFavoriteGenre(r.Context(), chi.URLParam(r, "id"), req.GenreID, tmdb.MediaType(req.MediaType))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UserStreamingPlatforms handles GET /users/profile/{id}/platforms.
func (h *Handlers) UserStreamingPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.profiles.StreamingPlatforms(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, platforms)
}

// AddStreamingPlatform handles PUT /users/profile/{id}/platforms.
func (h *Handlers) AddStreamingPlatform(w http.ResponseWriter, r *http.Request) {
	var req streamingPlatformRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	if err := h.profiles.AddStreamingPlatform(r.Context(), chi.URLParam(r, "id"), req.Platform); err != nil {
		respondError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveStreamingPlatform handles DELETE /users/profile/{id}/platforms.
func (h *Handlers) RemoveStreamingPlatform(w http.ResponseWriter, r *http.Request) {
	var req streamingPlatformRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	if err := h.profiles.RemoveStreamingPlatform(r.Context(), chi.URLParam(r, "id"), req.Platform); err != nil {
		respondError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
