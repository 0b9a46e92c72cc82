package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

// Moodify handles POST /moodify by forwarding the body to the mood service.
func (h *Handler) Moodify(w http.ResponseWriter, r *http.Request) {
	if h.mood == nil {
		h.writeError(w, http.StatusInternalServerError, "MOODIFY_URL not configured", nil)
		return
	}

	token := bearerToken(r)
	if token == "" {
		h.writeError(w, http.StatusUnauthorized, "No Spotify access token", nil)
		return
	}

	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	status, reply, err := h.mood.Classify(r.Context(), token, body)
	switch {
	case errors.Is(err, ports.ErrMoodNotConfigured):
		h.writeError(w, http.StatusInternalServerError, "MOODIFY_URL not configured", nil)
	case errors.Is(err, ports.ErrMoodEndpointNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   "Moodify service endpoint not found",
			Details: fmt.Sprintf("Check that MOODIFY_URL includes the /analyze path and the service is running (%v)", err),
		})
	case err != nil:
		h.writeError(w, http.StatusInternalServerError, "Failed to connect to Moodify service", err)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_, _ = w.Write(reply)
	}
}
