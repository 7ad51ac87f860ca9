package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"route-planner-service/internal/adapters/cache"
	"route-planner-service/internal/config"
	"route-planner-service/internal/platform/db"
	"route-planner-service/internal/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// openGeocodeCache builds the configured cache backend. The returned close
// func is always safe to call. Backend "none" yields a nil cache.
func openGeocodeCache(
	ctx context.Context,
	cfg config.CacheConfig,
	logger *zap.Logger,
) (ports.GeocodeCache, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case "none":
		return nil, noop, nil

	case "memory":
		return cache.NewMemoryGeocodeCache(cfg.TTL), noop, nil

	case "sqlite":
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("open geocode cache: create %q: %w", dir, err)
			}
		}
		conn, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open geocode cache: %w", err)
		}
		if err := cache.InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, noop, fmt.Errorf("open geocode cache: %w", err)
		}
		return cache.NewSqliteGeocodeCache(conn), func() { conn.Close() }, nil

	case "postgres":
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open geocode cache: %w", err)
		}
		return cache.NewSQLGeocodeCache(conn, logger.Named("geocode_cache")), func() { conn.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("open geocode cache: ping redis %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisGeocodeCache(client, cfg.TTL), func() { client.Close() }, nil
	}

	return nil, noop, fmt.Errorf("open geocode cache: unknown backend %q", cfg.Backend)
}
