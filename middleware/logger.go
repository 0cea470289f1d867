package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"notes-todo/services"

	"github.com/google/uuid"
)

// Handler is a single user-triggered operation, such as saving a note.
type Handler func(ctx context.Context) error

// Middleware wraps the handler of operation op.
type Middleware func(op string, next Handler) Handler

// Chain applies mws so that the first one is the outermost.
func Chain(mws ...Middleware) Middleware {
	return func(op string, next Handler) Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](op, next)
		}
		return next
	}
}

type operationIDKey struct{}

// OperationID returns the id StructuredLogger assigned to the running operation.
func OperationID(ctx context.Context) string {
	id, _ := ctx.Value(operationIDKey{}).(string)
	return id
}

// StructuredLogger logs every operation with an id and its latency. Store
// failures log at error level, other failures (bad input, nothing selected)
// at warn.
func StructuredLogger(logger *slog.Logger) Middleware {
	return func(op string, next Handler) Handler {
		return func(ctx context.Context) error {
			start := time.Now()
			operationID := uuid.New().String()
			ctx = context.WithValue(ctx, operationIDKey{}, operationID)

			err := next(ctx)

			logAttrs := []slog.Attr{
				slog.String("operation_id", operationID),
				slog.String("operation", op),
				slog.Duration("latency", time.Since(start)),
			}

			var storeErr *services.StoreError
			if err != nil {
				logAttrs = append(logAttrs, slog.String("error", err.Error()))
			}

			switch {
			case errors.As(err, &storeErr):
				logger.LogAttrs(ctx, slog.LevelError, "store error", logAttrs...)
			case err != nil:
				logger.LogAttrs(ctx, slog.LevelWarn, "operation rejected", logAttrs...)
			default:
				logger.LogAttrs(ctx, slog.LevelInfo, "operation completed", logAttrs...)
			}

			return err
		}
	}
}
