package app

import (
	"log/slog"

	"notes-todo/config"
	"notes-todo/database"
	"notes-todo/middleware"
	"notes-todo/services"
	"notes-todo/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Config     *config.Config
	DB         *database.DB
	Repo       *database.Repository
	Notes      *services.NoteService
	Tasks      *services.TaskService
	Validator  *validator.Validator
	Middleware middleware.Middleware
	Logger     *slog.Logger
}

// New creates a new App instance with all dependencies
func New(cfg *config.Config, db *database.DB, repo *database.Repository, notes *services.NoteService, tasks *services.TaskService, logger *slog.Logger) *App {
	return &App{
		Config:     cfg,
		DB:         db,
		Repo:       repo,
		Notes:      notes,
		Tasks:      tasks,
		Validator:  validator.New(),
		Middleware: middleware.Chain(),
		Logger:     logger,
	}
}
