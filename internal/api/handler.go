// internal/api/handler.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gitdiscover-collector/internal/jobs"
)

// Handler is the container for the health endpoint's dependencies.
type Handler struct {
	tracker *jobs.StatusTracker
	logger  *slog.Logger
}

// NewRouter creates and configures a chi router serving the health check.
func NewRouter(tracker *jobs.StatusTracker, logger *slog.Logger) http.Handler {
	h := &Handler{
		tracker: tracker,
		logger:  logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", h.healthCheck)

	return r
}

type jobStatusResponse struct {
	LastRun     *time.Time `json:"lastRun"`
	LastSuccess *time.Time `json:"lastSuccess"`
	Error       *string    `json:"error"`
}

type healthResponse struct {
	Status    string                       `json:"status"`
	Uptime    float64                      `json:"uptime"`
	Timestamp time.Time                    `json:"timestamp"`
	Jobs      map[string]jobStatusResponse `json:"jobs"`
}

// Health payload job keys, decoupled from the sync_log type names.
var jobKeys = map[jobs.JobType]string{
	jobs.JobDaily:     "daily",
	jobs.JobAI:        "ai",
	jobs.JobWarmCache: "warmCache",
}

// healthCheck reports process uptime and the last observed run of each job.
// GET /health
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	states := h.tracker.States()
	out := make(map[string]jobStatusResponse, len(jobKeys))
	for job, key := range jobKeys {
		state := states[job]
		out[key] = jobStatusResponse{
			LastRun:     state.LastRun,
			LastSuccess: state.LastSuccess,
			Error:       state.LastError,
		}
	}

	respondWithJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Uptime:    h.tracker.Uptime().Seconds(),
		Timestamp: time.Now().UTC(),
		Jobs:      out,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}
