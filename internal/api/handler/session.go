package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/auracount/auracount/internal/api/request"
	"github.com/auracount/auracount/internal/api/response"
	"github.com/auracount/auracount/internal/model"
	"github.com/auracount/auracount/internal/services/score"
	"github.com/auracount/auracount/internal/services/session"
)

// SessionHandler handles session endpoints. Switching sessions stashes the
// live score snapshot into the outgoing session before the new one is
// loaded, so no scores are lost across a switch.
type SessionHandler struct {
	sessions *session.Directory
	scores   *score.Store
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Directory, scores *score.Store) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		scores:   scores,
	}
}

// stashCurrent saves the live snapshot into the current session, if any
func (h *SessionHandler) stashCurrent() {
	if current := h.sessions.CurrentSession(); current != nil {
		h.sessions.UpdateSessionGameState(current.ID, h.scores.Snapshot())
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	h.stashCurrent()

	created, err := h.sessions.CreateSession(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.scores.LoadFromSnapshot(created.GameState)

	response.JSON(w, http.StatusCreated, response.SessionFromModel(created, true))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	var currentID model.SessionID
	if current := h.sessions.CurrentSession(); current != nil {
		currentID = current.ID
	}
	response.JSON(w, http.StatusOK, response.SessionsFromModel(h.sessions.Sessions(), currentID))
}

// GetByCode handles GET /api/v1/sessions/code/{code}
func (h *SessionHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])
	found, err := h.sessions.FindSessionByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	current := h.sessions.CurrentSession()
	isCurrent := current != nil && current.ID == found.ID
	response.JSON(w, http.StatusOK, response.SessionFromModel(found, isCurrent))
}

// GetCurrent handles GET /api/v1/sessions/current
func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	current := h.sessions.CurrentSession()
	if current == nil {
		WriteError(w, model.ErrSessionNotFound)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(current, true))
}

// SetCurrent handles PUT /api/v1/sessions/current
func (h *SessionHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	var req request.SetCurrentSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ID == "" {
		WriteError(w, NewInvalidRequestError("id is required"))
		return
	}

	id := model.SessionID(req.ID)
	target := h.sessions.GetSession(id)
	if target == nil {
		WriteError(w, model.ErrSessionNotFound)
		return
	}

	h.stashCurrent()

	if !h.sessions.SetCurrentSession(r.Context(), id) {
		WriteError(w, model.ErrSessionNotFound)
		return
	}
	h.scores.LoadFromSnapshot(target.GameState)

	response.JSON(w, http.StatusOK, response.SessionFromModel(target, true))
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	current := h.sessions.CurrentSession()
	wasCurrent := current != nil && current.ID == id

	if !h.sessions.DeleteSession(r.Context(), id) {
		WriteError(w, model.ErrSessionNotFound)
		return
	}
	if wasCurrent {
		h.scores.LoadFromSnapshot(model.EmptySnapshot())
	}

	response.NoContent(w)
}

// Clean handles POST /api/v1/sessions/clean
func (h *SessionHandler) Clean(w http.ResponseWriter, r *http.Request) {
	var req request.CleanSessionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.MaxAgeDays <= 0 {
		WriteError(w, NewInvalidRequestError("max_age_days must be positive"))
		return
	}

	removed := h.sessions.CleanOldSessions(r.Context(), req.MaxAgeDays)
	response.JSON(w, http.StatusOK, response.CleanResponse{Removed: removed})
}
