package rest

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
	"github.com/ewilliams-labs/cadence/backend/internal/core/services"
)

// maxBodyBytes bounds every request body the API reads.
const maxBodyBytes = 1 << 20

// Options tunes a Handler.
type Options struct {
	// Production hides error details from responses.
	Production bool
	Logger     *log.Logger
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	workouts   *services.WorkoutService
	generator  *services.Generator
	mood       ports.MoodClassifier
	production bool
	logger     *log.Logger
	router     *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(workouts *services.WorkoutService, generator *services.Generator, mood ports.MoodClassifier, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{
		workouts:   workouts,
		generator:  generator,
		mood:       mood,
		production: opts.Production,
		logger:     logger,
		router:     http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	h.router.HandleFunc("GET /workouts", h.ListWorkouts)
	h.router.HandleFunc("POST /workouts", h.CreateWorkout)
	h.router.HandleFunc("GET /workouts/{id}", h.GetWorkout)
	h.router.HandleFunc("PUT /workouts/{id}/sections", h.UpdateSections)

	h.router.HandleFunc("POST /playlists/generate", h.GeneratePlaylist)
	h.router.HandleFunc("POST /moodify", h.Moodify)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Cadence is live"})
}
