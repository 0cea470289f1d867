package setup

import (
	"context"
	"fmt"
	"log/slog"

	"notes-todo/app"
	"notes-todo/config"
	"notes-todo/database"
	"notes-todo/services"
)

// InitDatabase opens the configured store and creates its schema
func InitDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "driver", cfg.DBDriver)
	return db, nil
}

// InitApp builds the services on top of db and loads their caches
func InitApp(ctx context.Context, cfg *config.Config, db *database.DB, logger *slog.Logger) (*app.App, error) {
	repo := database.NewRepository(db)
	notes := services.NewNoteService(repo)
	tasks := services.NewTaskService(repo)

	ctx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	defer cancel()

	if err := notes.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	if err := tasks.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	application := app.New(cfg, db, repo, notes, tasks, logger)
	application.Middleware = OperationMiddleware(cfg, logger)
	logger.Info("application initialized",
		"notes", len(notes.GetAll()),
		"tasks", len(tasks.GetAll()),
	)

	return application, nil
}

// Shutdown releases everything InitDatabase opened
func Shutdown(db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
			return
		}
		logger.Info("database closed")
	}
}
