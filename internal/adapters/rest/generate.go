package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/services"
)

type generateRequest struct {
	WorkoutID string `json:"workoutId"`
}

// GeneratePlaylist handles POST /playlists/generate. The catalog token is
// taken from the Authorization header.
func (h *Handler) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		h.writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
		return
	}

	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.WorkoutID = strings.TrimSpace(req.WorkoutID)
	if req.WorkoutID == "" {
		h.writeError(w, http.StatusBadRequest, "workoutId is required", nil)
		return
	}

	cred := domain.Credential{AccessToken: bearerToken(r)}
	ref, err := h.generator.GeneratePlaylist(r.Context(), req.WorkoutID, cred)
	if err != nil {
		status, message := generationStatus(err)
		h.writeError(w, status, message, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

// generationStatus maps a generation failure to an HTTP status and a
// message safe to show in production.
func generationStatus(err error) (int, string) {
	var ge *services.GenerationError
	if !errors.As(err, &ge) {
		return http.StatusInternalServerError, "Failed to generate playlist"
	}

	if ge.Kind == services.KindPrecondition {
		switch {
		case errors.Is(err, domain.ErrInvalidCredential):
			return http.StatusUnauthorized, "No valid Spotify access token"
		case errors.Is(err, domain.ErrNotFound):
			return http.StatusNotFound, "Workout not found"
		case errors.Is(err, domain.ErrNoSections):
			return http.StatusBadRequest, "Workout has no sections"
		default:
			return http.StatusBadRequest, "Workout cannot be used for a playlist"
		}
	}

	message := fmt.Sprintf("Failed to generate playlist: %s failed", ge.Op)
	switch {
	case ge.StatusCode >= http.StatusBadRequest:
		return ge.StatusCode, message
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, message
	default:
		return http.StatusInternalServerError, message
	}
}
