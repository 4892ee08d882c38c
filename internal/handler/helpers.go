package handler

import (
	"net/http"

	"nova/internal/httputil"
)

// parseJSON is a thin wrapper so handlers in this package share one body
// size discipline.
func parseJSON(w http.ResponseWriter, r *http.Request, dest interface{}, maxBytes int64) error {
	return httputil.ParseJSON(w, r, dest, maxBytes)
}
