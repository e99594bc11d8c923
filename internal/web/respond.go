package web

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/sofaymanta/sofaymanta-backend/internal/store"
	"github.com/sofaymanta/sofaymanta-backend/internal/tmdb"
)

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondErrorMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondError maps service errors onto HTTP statuses. Not-found and
// conflict sentinels keep their messages; anything unrecognized is logged
// and hidden behind a generic 500.
func respondError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, tmdb.ErrNotFound):
		respondErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict):
		respondErrorMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrForbidden):
		respondErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrInvalidInput):
		respondErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		var validationErrs validator.ValidationErrors
		var badReq badRequestError
		if errors.As(err, &validationErrs) || errors.As(err, &badReq) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("request failed")
		respondErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody decodes and validates a JSON request body.
func decodeBody(r *http.Request, validate *validator.Validate, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest("invalid JSON body")
	}
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}

// badRequestError marks client errors raised before any collaborator runs.
type badRequestError string

func (e badRequestError) Error() string { return string(e) }

func errBadRequest(msg string) error { return badRequestError(msg) }
