package middleware

import (
	"log/slog"
	"net/http"

	"github.com/auracount/auracount/internal/middleware"
)

// Logging wraps API handlers with per-request logging
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
