package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/services"

	"go.uber.org/zap"
)

type RoutePlanner interface {
	Plan(ctx context.Context, req services.PlanRequest) (*services.PlanResult, error)
}

type OptimizeHandler struct {
	Planner  RoutePlanner
	MaxBytes int64
	Logger   *zap.Logger
}

// Optimize computes the visiting order for the posted addresses.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, h.Logger, http.MethodPost)
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, bodyLimit(h.MaxBytes)))
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "Ongeldige JSON", domain.KindInvalidInput)
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, h.Logger, http.StatusBadRequest, "Body mag slechts één JSON object bevatten", domain.KindInvalidInput)
		return
	}

	res, err := h.Planner.Plan(r.Context(), services.PlanRequest{
		RegionKey:    req.StartRegion,
		Addresses:    req.Addresses,
		Driver:       req.Driver,
		EndRegionKey: req.EndRegion,
	})
	if err != nil {
		writeRouteError(w, r, h.Logger, err)
		return
	}

	if res.Mode == services.ModeMultiDay {
		writeJSON(w, r, h.Logger, http.StatusOK, dto.MultiDayResponse{Mode: res.Mode, Days: res.Days})
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, dto.RouteResponse{
		Mode:                 res.Mode,
		Stops:                res.Route.Stops,
		TotalDistanceMeters:  res.Route.TotalDistanceMeters,
		TotalDurationSeconds: res.Route.TotalDurationSeconds,
		Unmatched:            res.Route.Unmatched,
		Unresolved:           res.Route.Unresolved,
	})
}
