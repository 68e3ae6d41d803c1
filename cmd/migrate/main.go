package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"go.uber.org/zap"

	"career-coach-backend/internal/shared/config"
	"career-coach-backend/internal/shared/storage/db"
	"career-coach-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	_ = telemetry.Init(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = telemetry.Sync() }()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", zap.Error(err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", zap.Error(err))
		sqlDB.Close()
		os.Exit(1)
	}
	telemetry.Info("migrate.done")
}
