package handlers

import (
	"net/http"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, nil, http.MethodGet)
		return
	}

	res := map[string]string{"status": "ok"}
	writeJSON(w, r, nil, http.StatusOK, res)
}
