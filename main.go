package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"notes-todo/app"
	"notes-todo/config"
	"notes-todo/config/setup"
	"notes-todo/tui"
)

func main() {
	config.Load()

	if err := run(config.AppConfig, tui.Run); err != nil {
		slog.Error("notes-todo stopped with error", "error", err)
		os.Exit(1)
	}
}

// run wires the application and blocks in ui until the user quits. Every
// resource it opens is released before it returns.
func run(cfg *config.Config, ui func(context.Context, *app.App) error) error {
	logger, logFile, err := setup.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Schema must exist before the services load their caches
	db, err := setup.InitDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return fmt.Errorf("initialize database: %w", err)
	}
	defer setup.Shutdown(db, logger)

	application, err := setup.InitApp(ctx, cfg, db, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		return fmt.Errorf("initialize application: %w", err)
	}

	logger.Info("starting ui", "env", cfg.Env, "driver", cfg.DBDriver)

	if err := ui(ctx, application); err != nil {
		logger.Error("ui exited with error", "error", err)
		return fmt.Errorf("ui: %w", err)
	}

	logger.Info("stopped")
	return nil
}
