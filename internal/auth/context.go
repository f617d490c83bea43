package auth

import (
	"context"

	"shop-api/internal/domain"
)

type actorContextKey struct{}

// WithActor binds the authenticated user to a request context so both
// transports can recover it.
func WithActor(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, actorContextKey{}, user)
}

// ActorFrom returns the authenticated user, or nil for anonymous requests.
func ActorFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(actorContextKey{}).(*domain.User)
	return user
}
