package middleware

import (
	"context"
	"time"
)

// Timeout bounds each operation's store calls by d. A zero d disables it.
func Timeout(d time.Duration) Middleware {
	return func(op string, next Handler) Handler {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx)
		}
	}
}
