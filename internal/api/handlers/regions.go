package handlers

import (
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
)

// Regions lists the configured start regions.
func Regions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, nil, http.MethodGet)
		return
	}
	writeJSON(w, r, nil, http.StatusOK, dto.RegionsResponse{Regions: domain.Regions()})
}
