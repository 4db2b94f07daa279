package handler

import (
	"io"
	"net/http"

	"github.com/auracount/auracount/internal/api/response"
	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/services/score"
)

// Export payloads are whole snapshots; cap request bodies well above any
// realistic one.
const maxImportBytes = 32 << 20

// GameHandler handles whole-game maintenance endpoints
type GameHandler struct {
	scores *score.Store
}

// NewGameHandler creates a new game handler
func NewGameHandler(scores *score.Store) *GameHandler {
	return &GameHandler{
		scores: scores,
	}
}

// Reset handles POST /api/v1/game/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.scores.ResetGame(r.Context())
	response.NoContent(w)
}

// Export handles GET /api/v1/game/export
func (h *GameHandler) Export(w http.ResponseWriter, r *http.Request) {
	data := h.scores.ExportData()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="aura-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import handles POST /api/v1/game/import
func (h *GameHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		WriteError(w, NewInvalidRequestError("failed to read request body"))
		return
	}

	if !h.scores.ImportData(r.Context(), data) {
		WriteError(w, model.ErrInvalidSnapshot)
		return
	}
	response.JSON(w, http.StatusOK, response.ImportResponse{Imported: true})
}
