package logging

import (
	"context"
	"time"

	"github.com/andrescamacho/rareships-go/internal/application/mediator"
)

// RequestLoggingMiddleware logs every mediator request: failures at ERROR,
// successes at DEBUG. The logger is taken from the request context.
func RequestLoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		start := time.Now()
		response, err := next(ctx, request)

		logger := LoggerFromContext(ctx)
		metadata := map[string]interface{}{
			"request":     mediator.RequestName(request),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(LevelError, "request failed", metadata)
		} else {
			logger.Log(LevelDebug, "request handled", metadata)
		}
		return response, err
	}
}
