package storage

import (
	"context"
	"log/slog"
	"sync"
)

// Health tracks reachability of the remote store as a two-state machine:
// Online or Offline. Any remote failure flips it Offline; it only goes
// back Online through an explicit Probe.
type Health struct {
	mu     sync.RWMutex
	online bool

	store  Store
	logger *slog.Logger
}

// NewHealth creates a Health tracker for the given store, starting Offline
// until the first Probe
func NewHealth(store Store, logger *slog.Logger) *Health {
	return &Health{
		store:  store,
		logger: logger,
	}
}

// Online reports whether remote mirroring is currently enabled
func (h *Health) Online() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.online
}

// MarkOffline transitions to Offline. Called on any remote failure.
func (h *Health) MarkOffline() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.online {
		h.logger.Warn("remote store unreachable, switching to offline mode")
	}
	h.online = false
}

// Probe checks remote reachability and updates the state accordingly.
// This is the only way back to Online.
func (h *Health) Probe(ctx context.Context) bool {
	err := h.store.Ping(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.online = err == nil
	if err != nil {
		h.logger.Warn("remote store probe failed", slog.String("error", err.Error()))
	}
	return h.online
}
