package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/auracount/auracount/internal/api/handler"
	"github.com/auracount/auracount/internal/api/middleware"
	"github.com/auracount/auracount/internal/services/score"
	"github.com/auracount/auracount/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	ScoreStore *score.Store
	Sessions   *session.Directory
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.ScoreStore)
	sessionHandler := handler.NewSessionHandler(cfg.Sessions, cfg.ScoreStore)
	gameHandler := handler.NewGameHandler(cfg.ScoreStore)
	healthHandler := handler.NewHealthHandler(cfg.ScoreStore)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session routes. Fixed paths are registered before the {id} wildcard.
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions", sessionHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/sessions/current", sessionHandler.GetCurrent).Methods(http.MethodGet)
	api.HandleFunc("/sessions/current", sessionHandler.SetCurrent).Methods(http.MethodPut)
	api.HandleFunc("/sessions/clean", sessionHandler.Clean).Methods(http.MethodPost)
	api.HandleFunc("/sessions/code/{code}", sessionHandler.GetByCode).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", sessionHandler.Delete).Methods(http.MethodDelete)

	// Player routes
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/players/{id}/aura", playerHandler.ChangeAura).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}/actions", playerHandler.Actions).Methods(http.MethodGet)

	// Action log
	api.HandleFunc("/actions", playerHandler.ListActions).Methods(http.MethodGet)

	// Whole-game maintenance
	api.HandleFunc("/game/reset", gameHandler.Reset).Methods(http.MethodPost)
	api.HandleFunc("/game/export", gameHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/game/import", gameHandler.Import).Methods(http.MethodPost)

	// Health
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/health/refresh", healthHandler.Refresh).Methods(http.MethodPost)

	return r
}
