package auth

import "context"

type contextKey struct{}

var actorKey contextKey

// WithActorID returns a context carrying the authenticated caller's id.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey, actorID)
}

// ActorID returns the caller id set by the auth middleware, or "" when the
// request was anonymous.
func ActorID(ctx context.Context) string {
	if val, ok := ctx.Value(actorKey).(string); ok {
		return val
	}
	return ""
}
