package auth

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/mediator"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// Context keys for passing caller identity through context
type authContextKey int

const (
	callerKey authContextKey = iota + 1000 // Offset from logger keys
)

// WithCaller injects the identity of whoever issues the request
func WithCaller(ctx context.Context, caller shared.Identity) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext extracts the caller identity.
// Returns shared.ErrNotAuthorized when no caller was injected.
func CallerFromContext(ctx context.Context) (shared.Identity, error) {
	caller, ok := ctx.Value(callerKey).(shared.Identity)
	if !ok || caller.IsZero() {
		return shared.Identity{}, shared.NewNotAuthorizedError("no caller identity in context")
	}
	return caller, nil
}

// CallerRequired is implemented by commands that act on behalf of a caller
type CallerRequired interface {
	RequiresCaller()
}

// RequireCallerMiddleware rejects CallerRequired requests sent without a caller
// before they reach their handler
func RequireCallerMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, ok := request.(CallerRequired); ok {
			if _, err := CallerFromContext(ctx); err != nil {
				return nil, fmt.Errorf("%s: %w", mediator.RequestName(request), err)
			}
		}
		return next(ctx, request)
	}
}
