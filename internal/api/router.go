package api

import (
	"net/http"
	"route-planner-service/internal/api/handlers"
	"route-planner-service/internal/platform/logging"
	"route-planner-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Planner        handlers.RoutePlanner
	Source         ports.AddressSource
	MaxUploadBytes int64
	UsernameSet    bool
	PasswordSet    bool
	Logger         *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	logger := logging.OrNop(deps.Logger)
	mux := http.NewServeMux()

	uploadHandler := &handlers.UploadHandler{
		Source:   deps.Source,
		MaxBytes: deps.MaxUploadBytes,
		Logger:   logger,
	}
	optimizeHandler := &handlers.OptimizeHandler{
		Planner:  deps.Planner,
		MaxBytes: deps.MaxUploadBytes,
		Logger:   logger,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/regions", handlers.Regions)
	mux.HandleFunc("/upload", uploadHandler.Upload)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/debug/credentials", handlers.Credentials(deps.UsernameSet, deps.PasswordSet))
	mux.Handle("/metrics", promhttp.Handler())

	return requestIDMiddleware(loggingMiddleware(logger, recoverMiddleware(logger, mux)))
}
