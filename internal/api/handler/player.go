package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/auracount/auracount/internal/api/request"
	"github.com/auracount/auracount/internal/api/response"
	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/services/score"
)

// PlayerHandler handles player and aura endpoints
type PlayerHandler struct {
	scores *score.Store
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(scores *score.Store) *PlayerHandler {
	return &PlayerHandler{
		scores: scores,
	}
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	player := h.scores.AddPlayer(r.Context(), req.Name)
	response.JSON(w, http.StatusCreated, response.PlayerFromModel(&player))
}

// List handles GET /api/v1/players (?sorted=true for descending aura order)
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	var players []model.Player
	if r.URL.Query().Get("sorted") == "true" {
		players = h.scores.SortedPlayers()
	} else {
		players = h.scores.Players()
	}
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])
	player := h.scores.Player(id)
	if player == nil {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Update handles PATCH /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		WriteError(w, NewInvalidRequestError("name must not be blank"))
		return
	}

	id := model.PlayerID(mux.Vars(r)["id"])
	player := h.scores.UpdatePlayer(r.Context(), id, model.PlayerUpdate{
		Name:         req.Name,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
	})
	if player == nil {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])
	if !h.scores.RemovePlayer(r.Context(), id) {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}
	response.NoContent(w)
}

// ChangeAura handles POST /api/v1/players/{id}/aura
func (h *PlayerHandler) ChangeAura(w http.ResponseWriter, r *http.Request) {
	var req request.ChangeAuraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id := model.PlayerID(mux.Vars(r)["id"])
	if !h.scores.ChangeAura(r.Context(), id, req.Change, req.Reason) {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(h.scores.Player(id)))
}

// Actions handles GET /api/v1/players/{id}/actions
func (h *PlayerHandler) Actions(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])
	if h.scores.Player(id) == nil {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}
	response.JSON(w, http.StatusOK, response.ActionsFromModel(h.scores.PlayerActions(id)))
}

// ListActions handles GET /api/v1/actions
func (h *PlayerHandler) ListActions(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.ActionsFromModel(h.scores.Actions()))
}
