package domain

import "errors"

// Sentinel errors - use with errors.Is()
var (
	// ErrValidation indicates invalid input from the caller.
	ErrValidation = errors.New("validation failed")

	// ErrStore indicates the durable store is unavailable or a write failed.
	// Fatal to the current request, not to the process.
	ErrStore = errors.New("store failure")

	// ErrBackend indicates a network or backend-side error from an AI
	// backend. No assistant turn is persisted when a request ends this way.
	ErrBackend = errors.New("backend failure")
)
