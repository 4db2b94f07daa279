package handler

import (
	"net/http"

	"github.com/auracount/auracount/internal/api/response"
	"github.com/auracount/auracount/internal/services/score"
)

// HealthHandler reports server liveness and remote storage connectivity
type HealthHandler struct {
	scores *score.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(scores *score.Store) *HealthHandler {
	return &HealthHandler{
		scores: scores,
	}
}

func storageStatus(connected bool) string {
	if connected {
		return "online"
	}
	return "offline"
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status:  "ok",
		Storage: storageStatus(h.scores.Connected()),
	})
}

// Refresh handles POST /api/v1/health/refresh: re-probe the remote store
// and, if reachable, reload state from it
func (h *HealthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.scores.Refresh(r.Context())
	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status:  "ok",
		Storage: storageStatus(h.scores.Connected()),
	})
}
