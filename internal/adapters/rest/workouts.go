package rest

import (
	"errors"
	"net/http"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/services"
)

type createWorkoutRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type updateSectionsRequest struct {
	Sections []domain.Section `json:"sections"`
}

// CreateWorkout handles POST /workouts
func (h *Handler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		h.writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
		return
	}

	var req createWorkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	workout, err := h.workouts.CreateWorkout(r.Context(), req.Name, req.Type)
	if err != nil {
		h.writeWorkoutError(w, "Failed to create workout", err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

// ListWorkouts handles GET /workouts
func (h *Handler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.workouts.ListWorkouts(r.Context())
	if err != nil {
		h.writeWorkoutError(w, "Failed to list workouts", err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

// GetWorkout handles GET /workouts/{id}
func (h *Handler) GetWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := h.workouts.GetWorkout(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeWorkoutError(w, "Failed to load workout", err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// UpdateSections handles PUT /workouts/{id}/sections
func (h *Handler) UpdateSections(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		h.writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
		return
	}

	var req updateSectionsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	workout, err := h.workouts.ReplaceSections(r.Context(), r.PathValue("id"), req.Sections)
	if err != nil {
		h.writeWorkoutError(w, "Failed to update sections", err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (h *Handler) writeWorkoutError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "Workout not found", err)
	case errors.Is(err, services.ErrInvalidInput):
		h.writeError(w, http.StatusBadRequest, message, err)
	default:
		h.writeError(w, http.StatusInternalServerError, message, err)
	}
}
