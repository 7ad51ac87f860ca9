package handlers

import (
	"net/http"
	"route-planner-service/internal/api/dto"
)

// Credentials reports whether RouteXL credentials are configured. Values are
// never exposed.
func Credentials(usernameSet, passwordSet bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, nil, http.MethodGet)
			return
		}
		writeJSON(w, r, nil, http.StatusOK, dto.CredentialsResponse{
			UsernameSet: usernameSet,
			PasswordSet: passwordSet,
			Note:        "Alleen booleans, waarden worden nooit getoond.",
		})
	}
}
