package setup

import (
	"log/slog"

	"notes-todo/config"
	"notes-todo/middleware"
)

// OperationMiddleware is the chain every panel operation runs through.
func OperationMiddleware(cfg *config.Config, logger *slog.Logger) middleware.Middleware {
	return middleware.Chain(
		middleware.StructuredLogger(logger),
		middleware.Timeout(cfg.DBTimeout),
	)
}
