package main

import (
	"context"
	"route-planner-service/internal/adapters/cache"
	"route-planner-service/internal/config"
	"route-planner-service/internal/platform/db"
	"route-planner-service/internal/platform/logging"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// dbtool prepares the Postgres geocode cache: creates the table and, when
// SEED_PATH points at a JSON file, preloads known coordinates.
func main() {
	envErr := godotenv.Load()

	logger, err := logging.New(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Info("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	ctx := context.Background()

	logger.Info("Initializing database schema...")
	if err := cache.InitSchema(ctx, conn); err != nil {
		logger.Fatal("schema initialization failed", zap.Error(err))
	}
	logger.Info("Schema ready.")

	seedPath := config.Get("SEED_PATH", "")
	if seedPath == "" {
		return
	}

	logger.Info("Seeding geocode cache...", zap.String("path", seedPath))
	n, err := cache.SeedFromJSON(ctx, cache.NewSQLGeocodeCache(conn, logger), seedPath)
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("Seeding complete.", zap.Int("entries", n))
}
