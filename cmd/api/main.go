package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"career-coach-backend/internal/bootstrap"
	"career-coach-backend/internal/shared/config"
	"career-coach-backend/internal/shared/server"
	"career-coach-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = telemetry.Sync() }()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("bootstrap.failed", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("server.stopped", zap.Error(err))
		os.Exit(1)
	}
}
