package auth

import "context"

type contextKey struct{}

// WithPlayerID returns a context carrying the authenticated player id.
func WithPlayerID(ctx context.Context, playerID int) context.Context {
	return context.WithValue(ctx, contextKey{}, playerID)
}

// PlayerIDFromContext extracts the authenticated player id, if any.
func PlayerIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(contextKey{}).(int)
	return id, ok
}
