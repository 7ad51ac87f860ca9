package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"

	"go.uber.org/zap"
)

const defaultMaxBytes = 10 << 20

func bodyLimit(n int64) int64 {
	if n <= 0 {
		return defaultMaxBytes
	}
	return n
}

func writeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Warn("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, msg string, code domain.ErrorKind) {
	writeJSON(w, r, logger, status, dto.ErrorResponse{Error: msg, Code: string(code)})
}

// statusFor maps the route error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNoValidAddresses):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProviderQuota):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrProviderAuth), errors.Is(err, domain.ErrProviderTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeRouteError logs err with its internal cause and answers with the Dutch
// user message only.
func writeRouteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := statusFor(err)
	if logger != nil {
		logger.Warn("request failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.String("kind", string(domain.KindOf(err))),
			zap.Error(err),
		)
	}
	writeError(w, r, logger, status, domain.UserMessage(err), domain.KindOf(err))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, logger *zap.Logger, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, r, logger, http.StatusMethodNotAllowed, "method not allowed", "")
}
