package web

import (
	"net/http"

	"github.com/sofaymanta/sofaymanta-backend/internal/store"
)

// ListPlatforms handles GET /platforms. ?active=true restricts to active
// platforms.
func (h *Handlers) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	platforms, err := h.platforms.List(r.Context(), activeOnly)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if platforms == nil {
		platforms = []store.StreamingPlatform{}
	}
	respondJSON(w, http.StatusOK, platforms)
}

// CreatePlatform handles POST /platforms.
func (h *Handlers) CreatePlatform(w http.ResponseWriter, r *http.Request) {
	var req createPlatformRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	platform, err := h.platforms.Create(r.Context(), store.CreatePlatformParams{
		Code:     req.Code,
		Name:     req.Name,
		LogoURL:  req.LogoURL,
		IsActive: isActive,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, platform)
}

// GetPlatform handles GET /platforms/{id}.
func (h *Handlers) GetPlatform(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	platform, err := h.platforms.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, platform)
}

// UpdatePlatform handles PATCH /platforms/{id}.
func (h *Handlers) UpdatePlatform(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	var req updatePlatformRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	platform, err := h.platforms.Update(r.Context(), id, store.UpdatePlatformParams{
		Code:     req.Code,
		Name:     req.Name,
		LogoURL:  req.LogoURL,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, platform)
}

// DeletePlatform handles DELETE /platforms/{id}.
func (h *Handlers) DeletePlatform(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if err := h.platforms.Delete(r.Context(), id); err != nil {
		respondError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TogglePlatform handles POST /platforms/{id}/toggle.
func (h *Handlers) TogglePlatform(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	platform, err := h.platforms.ToggleActive(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, platform)
}
