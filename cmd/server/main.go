package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"route-planner-service/internal/adapters/geocoding"
	"route-planner-service/internal/adapters/routexl"
	"route-planner-service/internal/adapters/spreadsheet"
	"route-planner-service/internal/api"
	"route-planner-service/internal/config"
	"route-planner-service/internal/platform/logging"
	"route-planner-service/internal/services"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, RouteXL, geocode cache) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	geocodeCache, closeCache, err := openGeocodeCache(ctx, cfg.Cache, logger)
	if err != nil {
		logger.Fatal("geocode cache unavailable", zap.String("backend", cfg.Cache.Backend), zap.Error(err))
	}
	defer closeCache()

	geocoder, err := geocoding.NewNominatimGeocoder(geocoding.Options{
		BaseURL:      cfg.Nominatim.BaseURL,
		UserAgent:    cfg.Nominatim.UserAgent,
		CountryCodes: cfg.Nominatim.CountryCodes,
		Timeout:      cfg.Nominatim.Timeout,
	}, logger.Named("nominatim"))
	if err != nil {
		logger.Fatal("nominatim geocoder", zap.Error(err))
	}

	optimizer := routexl.New(routexl.Config{
		BaseURL:  cfg.RouteXL.BaseURL,
		Username: cfg.RouteXL.Username,
		Password: cfg.RouteXL.Password,
		Timeout:  cfg.RouteXL.Timeout,
	}, logger.Named("routexl"))
	if !optimizer.HasCredentials() {
		logger.Warn("RouteXL credentials not configured; optimize requests will fail")
	}

	queue := services.NewGeocodeQueue(geocoder, geocodeCache, cfg.Nominatim.MinInterval, logger.Named("geocode"))
	planner := services.NewPlanner(queue, optimizer, services.PlannerOptions{
		DefaultRegion:      cfg.DefaultRegion,
		EndpointRegion:     cfg.Endpoint.Region,
		EndpointInMultiDay: cfg.Endpoint.InMultiDay,
	}, logger.Named("planner"))

	router := api.NewRouter(api.RouterDeps{
		Planner:        planner,
		Source:         spreadsheet.NewReader(logger.Named("spreadsheet")),
		MaxUploadBytes: cfg.MaxUploadBytes,
		UsernameSet:    cfg.RouteXL.Username != "",
		PasswordSet:    cfg.RouteXL.Password != "",
		Logger:         logger.Named("http"),
	})

	// Geocoding is spaced at >=1.1s per address, so large groups need a long write timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("server listening",
		zap.String("addr", srv.Addr),
		zap.String("geocode_cache", cfg.Cache.Backend),
		zap.String("default_region", cfg.DefaultRegion),
		zap.String("endpoint_region", cfg.Endpoint.Region),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
