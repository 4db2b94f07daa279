package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	// ErrCodeSpaceExhausted is raised when code generation gives up; with
	// 9000 possible codes this indicates a near-impossible capacity condition
	ErrCodeSpaceExhausted = errors.New("unable to generate a unique session code")

	// Snapshot errors
	ErrInvalidSnapshot = errors.New("snapshot payload is missing players or actions")
)
